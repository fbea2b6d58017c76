package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chrisuehlinger/widgetkit/widget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "enhance",
		Short: "Write a page's enhanced markup",
		Long: `Parse a page, enhance every declared widget, and serialize the result.

Enhancement reconciles each declaration's markup with its type's property
table: defaults are written out, explicit declarative values beat values
read from the markup, and the canonical state lands back in the
attributes, classes, and text the properties map to.

Flags:
  -o FILE    Write the enhanced markup to FILE instead of stdout
  --watch    Stay running and re-enhance whenever the page changes`,
		Usage: "widgetkit enhance <page.html> [-o out.html] [--watch]",
		Run:   runEnhance,
	})
}

type enhanceOptions struct {
	out   string
	watch bool
}

func runEnhance(args []string) error {
	paths, opts, err := parseEnhanceArgs(args)
	if err != nil {
		return err
	}
	if len(paths) != 1 {
		return fmt.Errorf("enhance expects exactly one page\n\nUsage: widgetkit enhance <page.html> [-o out.html] [--watch]")
	}
	page := paths[0]

	if opts.watch {
		if opts.out == "" {
			return fmt.Errorf("--watch requires -o, stdout cannot be rewritten")
		}
		return watchEnhance(page, opts.out)
	}
	return enhanceOnce(page, opts.out)
}

func parseEnhanceArgs(args []string) ([]string, enhanceOptions, error) {
	var opts enhanceOptions
	var paths []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-o" || arg == "--out":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("%s requires a file path", arg)
			}
			opts.out = args[i+1]
			i++
		case strings.HasPrefix(arg, "-o="):
			opts.out = strings.TrimPrefix(arg, "-o=")
		case strings.HasPrefix(arg, "--out="):
			opts.out = strings.TrimPrefix(arg, "--out=")
		case arg == "--watch":
			opts.watch = true
		case strings.HasPrefix(arg, "-"):
			return nil, opts, fmt.Errorf("unknown flag %q", arg)
		default:
			paths = append(paths, arg)
		}
	}
	return paths, opts, nil
}

func enhanceOnce(page, out string) error {
	doc, err := loadPage(page)
	if err != nil {
		return err
	}
	defer destroyWidgets(doc)

	issues := widget.ScanDocument(doc, activeConfig.ScanOptions())
	if err := writeDocument(doc, out); err != nil {
		return err
	}

	widgets := boundWidgets(doc)
	fmt.Fprintf(os.Stderr, "%s: %d widget(s) enhanced, %d declaration(s) skipped\n",
		page, len(widgets), len(issues))
	return nil
}

// watchEnhance re-runs enhancement whenever the page changes. Editors
// usually save through a rename-and-replace, so the watch covers the page's
// directory and filters events down to the page itself.
func watchEnhance(page, out string) error {
	if err := enhanceOnce(page, out); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(page)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target, err := filepath.Abs(page)
	if err != nil {
		return err
	}
	debounce := activeConfig.WatchDebounce()
	slog.Info("watching for changes", "page", page, "out", out)

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if err := enhanceOnce(page, out); err != nil {
				slog.Error("enhance failed", "page", page, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}
