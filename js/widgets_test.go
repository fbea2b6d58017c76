package js

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/chrisuehlinger/widgetkit/controls"
	"github.com/chrisuehlinger/widgetkit/widget"
)

func newWidgetRuntime(t *testing.T, markup string) *Runtime {
	t.Helper()
	if err := controls.RegisterAll(); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
	widget.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return newTestRuntime(t, markup)
}

func TestWidgetCreate(t *testing.T) {
	r := newWidgetRuntime(t, `<button id="b" class="widget-button" checked>Go</button>`)

	result, err := r.RunString(`
		var w = Widget.create("Button", {
			node: document.getElementById("b"),
			properties: { label: "Stay" }
		});
		[w.get("label"), w.get("checked"), w.get("disabled")].join(",");
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "Stay,true,false" {
		t.Errorf("Expected merged state, got %v", result.String())
	}

	btn := r.Document().GetElementByID("b")
	if got := btn.AsNode().TextContent(); got != "Stay" {
		t.Errorf("Expected markup written back, got %q", got)
	}

	result, _ = r.RunString(`w.node === document.getElementById("b")`)
	if !result.ToBoolean() {
		t.Error("Expected the wrapper to expose its bound node")
	}

	result, _ = r.RunString(`w.type + ":" + (w.id.indexOf("wk_") === 0)`)
	if result.String() != "Button:true" {
		t.Errorf("Expected type name and id prefix, got %v", result.String())
	}
}

func TestWidgetCreateUnknownTypeThrows(t *testing.T) {
	r := newWidgetRuntime(t, `<p>hi</p>`)

	result, err := r.RunString(`
		var caught = "";
		try {
			Widget.create("Carousel");
		} catch (e) {
			caught = String(e);
		}
		caught;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if !strings.Contains(result.String(), "no registered widget type") {
		t.Errorf("Expected a catchable lookup error, got %v", result.String())
	}
}

func TestWidgetSetThrowsOnBadValue(t *testing.T) {
	r := newWidgetRuntime(t, `<button id="b">Go</button>`)

	result, err := r.RunString(`
		var w = Widget.create("Button", { node: document.getElementById("b") });
		var caught = "";
		try {
			w.set("label", 5);
		} catch (e) {
			caught = String(e);
		}
		caught + "|" + w.get("label");
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	parts := strings.SplitN(result.String(), "|", 2)
	if !strings.Contains(parts[0], "InvalidPropertyValue") {
		t.Errorf("Expected InvalidPropertyValue thrown, got %v", parts[0])
	}
	if parts[1] != "Go" {
		t.Errorf("Expected state unchanged, got %v", parts[1])
	}
}

func TestWidgetGetByNodeIdentity(t *testing.T) {
	r := newWidgetRuntime(t, `<button id="b">Go</button>`)

	result, err := r.RunString(`
		var w = Widget.create("Button", { node: document.getElementById("b") });
		Widget.getByNode(document.getElementById("b")) === w;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if !result.ToBoolean() {
		t.Error("Expected one wrapper per widget instance")
	}

	result, _ = r.RunString(`Widget.getByNode(document.createElement("div"))`)
	if result.String() != "null" {
		t.Errorf("Expected null for an unbound node, got %v", result.String())
	}
}

func TestWidgetEvents(t *testing.T) {
	r := newWidgetRuntime(t, `<button id="b">Go</button>`)

	result, err := r.RunString(`
		var w = Widget.create("Button", { node: document.getElementById("b") });
		var seen = [];
		var sub = w.on("propertyChanged", function(e) {
			seen.push(e.change.name + ":" + e.change.oldValue + ">" + e.change.newValue);
		});
		w.set("disabled", true);
		sub.detach();
		w.set("disabled", false);
		seen.join(",");
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "disabled:false>true" {
		t.Errorf("Expected one change before detach, got %v", result.String())
	}
}

func TestWidgetPressBridge(t *testing.T) {
	r := newWidgetRuntime(t, `<button id="b">Go</button>`)

	result, err := r.RunString(`
		var w = Widget.create("Button", { node: document.getElementById("b") });
		var presses = 0;
		w.on("press", function(e) {
			if (e.domEvent && e.domEvent.type === "click") { presses++; }
		});
		document.getElementById("b").dispatchEvent(new Event("click", { bubbles: true }));
		presses;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.ToInteger() != 1 {
		t.Errorf("Expected the click bridged to press, got %v", result.ToInteger())
	}
}

func TestWidgetMarkupReconcileBetweenTurns(t *testing.T) {
	r := newWidgetRuntime(t, `<div id="menu"></div>`)

	_, err := r.RunString(`
		var w = Widget.create("Dropdown", { node: document.getElementById("menu") });
		var toggles = 0;
		w.on("toggled", function(e) { toggles++; });
		document.getElementById("menu").classList.add("open");
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}

	result, _ := r.RunString(`w.get("open") + ":" + toggles`)
	if result.String() != "false:0" {
		t.Fatalf("Expected reconcile deferred past the script turn, got %v", result.String())
	}

	r.RunOnce()

	result, _ = r.RunString(`w.get("open") + ":" + toggles`)
	if result.String() != "true:1" {
		t.Errorf("Expected reconcile delivered on the next turn, got %v", result.String())
	}
}

func TestWidgetScanFromScript(t *testing.T) {
	r := newWidgetRuntime(t, `<main>
		<button id="ok" data-widget-type="Button">One</button>
		<div data-widget-type="Missing"></div>
	</main>`)

	result, err := r.RunString(`
		var issues = Widget.scan();
		issues.length + ":" + issues[0].type + ":" + (Widget.getByNode(document.getElementById("ok")) !== null);
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "1:Missing:true" {
		t.Errorf("Expected one issue and one enhancement, got %v", result.String())
	}
}

func TestWidgetRenderTo(t *testing.T) {
	r := newWidgetRuntime(t, `<div id="mount"></div>`)

	result, err := r.RunString(`
		var w = Widget.create("Dropdown", { properties: { open: true } });
		var before = w.node === null;
		w.renderTo(document.getElementById("mount"));
		before + ":" + w.node.className;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "true:widget-dropdown open" {
		t.Errorf("Expected fabricated node with classes, got %v", result.String())
	}
}

func TestWidgetDestroyFromScript(t *testing.T) {
	r := newWidgetRuntime(t, `<button id="b">Go</button>`)

	result, err := r.RunString(`
		var w = Widget.create("Button", { node: document.getElementById("b") });
		var destroys = 0;
		w.on("destroy", function(e) { destroys++; });
		w.destroy();
		w.destroy();
		destroys + ":" + w.destroyed + ":" + (Widget.getByNode(document.getElementById("b")) === null);
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "1:true:true" {
		t.Errorf("Expected single teardown, got %v", result.String())
	}
}

func TestWidgetTypesList(t *testing.T) {
	r := newWidgetRuntime(t, `<p>hi</p>`)

	result, err := r.RunString(`Widget.types().indexOf("Button") >= 0 && Widget.types().indexOf("Dropdown") >= 0`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if !result.ToBoolean() {
		t.Error("Expected built-in types listed")
	}

	if _, ok := widget.LookupType("Button"); !ok {
		t.Error("Expected Button registered for the suite")
	}
}
