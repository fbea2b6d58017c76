package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrisuehlinger/widgetkit/controls"
)

func TestParseEnhanceArgs(t *testing.T) {
	paths, opts, err := parseEnhanceArgs([]string{"page.html", "-o", "out.html", "--watch"})
	if err != nil {
		t.Fatalf("parseEnhanceArgs failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != "page.html" {
		t.Errorf("Expected the page path, got %v", paths)
	}
	if opts.out != "out.html" {
		t.Errorf("Expected out.html, got %q", opts.out)
	}
	if !opts.watch {
		t.Error("Expected watch set")
	}

	_, opts, err = parseEnhanceArgs([]string{"--out=both.html", "page.html"})
	if err != nil {
		t.Fatalf("parseEnhanceArgs failed: %v", err)
	}
	if opts.out != "both.html" {
		t.Errorf("Expected equals form parsed, got %q", opts.out)
	}

	if _, _, err := parseEnhanceArgs([]string{"--bogus"}); err == nil {
		t.Error("Expected unknown flag to error")
	}
	if _, _, err := parseEnhanceArgs([]string{"-o"}); err == nil {
		t.Error("Expected dangling -o to error")
	}
}

func TestEnhanceOnce(t *testing.T) {
	if err := controls.RegisterAll(); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	out := filepath.Join(dir, "out.html")
	markup := `<!DOCTYPE html><html><body>
<button data-widget-type="ToggleButton" data-properties="checked: true">Go</button>
<div data-widget-type="Dropdown"></div>
<div data-widget-type="NoSuchThing"></div>
</body></html>`
	if err := os.WriteFile(page, []byte(markup), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := enhanceOnce(page, out); err != nil {
		t.Fatalf("enhanceOnce failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	enhanced := string(data)

	if !strings.Contains(enhanced, `checked=""`) {
		t.Errorf("Expected declarative checked written to markup, got %s", enhanced)
	}
	if !strings.Contains(enhanced, `data-placement="below"`) {
		t.Errorf("Expected dropdown placement default written, got %s", enhanced)
	}
	if !strings.Contains(enhanced, `data-widget-type="NoSuchThing"`) {
		t.Errorf("Expected the skipped declaration left untouched, got %s", enhanced)
	}

	// Re-running over the written output is stable.
	out2 := filepath.Join(dir, "out2.html")
	if err := enhanceOnce(out, out2); err != nil {
		t.Fatalf("second enhanceOnce failed: %v", err)
	}
	data2, err := os.ReadFile(out2)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data2) != enhanced {
		t.Errorf("Expected enhancement to be idempotent,\nfirst:  %s\nsecond: %s", enhanced, string(data2))
	}
}

func TestRunScan_BadArgs(t *testing.T) {
	if err := runScan(nil); err == nil {
		t.Error("Expected scan without a page to error")
	}
	if err := runScan([]string{"a.html", "b.html"}); err == nil {
		t.Error("Expected scan with two pages to error")
	}
}

func TestParseRunArgs(t *testing.T) {
	paths, opts, err := parseRunArgs([]string{"page.html", "--script", "app.js", "-o", "out.html"})
	if err != nil {
		t.Fatalf("parseRunArgs failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != "page.html" {
		t.Errorf("Expected the page path, got %v", paths)
	}
	if opts.script != "app.js" {
		t.Errorf("Expected app.js, got %q", opts.script)
	}
	if opts.out != "out.html" {
		t.Errorf("Expected out.html, got %q", opts.out)
	}

	_, opts, err = parseRunArgs([]string{"--script=x.js", "p.html"})
	if err != nil {
		t.Fatalf("parseRunArgs failed: %v", err)
	}
	if opts.script != "x.js" {
		t.Errorf("Expected equals form parsed, got %q", opts.script)
	}

	if _, _, err := parseRunArgs([]string{"--script"}); err == nil {
		t.Error("Expected dangling --script to error")
	}
}
