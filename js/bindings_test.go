package js

import (
	"strings"
	"testing"
)

func TestBindingsDocumentLookup(t *testing.T) {
	r := newTestRuntime(t, `<main><p id="intro" class="lead">Hello</p><p class="lead">Again</p></main>`)

	result, err := r.RunString(`document.getElementById("intro").textContent`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "Hello" {
		t.Errorf("Expected Hello, got %v", result.String())
	}

	result, _ = r.RunString(`document.getElementById("missing")`)
	if result.String() != "null" {
		t.Errorf("Expected null for a missing id, got %v", result.String())
	}
}

func TestBindingsQuerySelector(t *testing.T) {
	r := newTestRuntime(t, `<main><p id="intro" class="lead">Hello</p><p class="lead">Again</p></main>`)

	result, err := r.RunString(`document.querySelector("#intro").id`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "intro" {
		t.Errorf("Expected intro, got %v", result.String())
	}

	result, _ = r.RunString(`document.querySelectorAll(".lead").length`)
	if result.ToInteger() != 2 {
		t.Errorf("Expected 2 by class, got %v", result.ToInteger())
	}

	result, _ = r.RunString(`document.querySelectorAll("p").length`)
	if result.ToInteger() != 2 {
		t.Errorf("Expected 2 by tag, got %v", result.ToInteger())
	}

	result, _ = r.RunString(`document.querySelector(".missing")`)
	if result.String() != "null" {
		t.Errorf("Expected null, got %v", result.String())
	}
}

func TestBindingsNodeIdentity(t *testing.T) {
	r := newTestRuntime(t, `<p id="x">one</p>`)

	result, err := r.RunString(`document.getElementById("x") === document.querySelector("#x")`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if !result.ToBoolean() {
		t.Error("Expected one JS object per node")
	}
}

func TestBindingsAttributes(t *testing.T) {
	r := newTestRuntime(t, `<div id="box" data-kind="demo"></div>`)

	result, err := r.RunString(`document.getElementById("box").getAttribute("data-kind")`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "demo" {
		t.Errorf("Expected demo, got %v", result.String())
	}

	_, err = r.RunString(`
		var box = document.getElementById("box");
		box.setAttribute("data-kind", "live");
		box.toggleAttribute("hidden");
		box.removeAttribute("id");
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}

	box := r.Document().GetElementsByTagName("div")[0]
	if got, _ := box.GetAttribute("data-kind"); got != "live" {
		t.Errorf("Expected attribute written through, got %q", got)
	}
	if !box.HasAttribute("hidden") {
		t.Error("Expected toggled attribute present")
	}
	if box.HasAttribute("id") {
		t.Error("Expected id removed")
	}

	result, _ = r.RunString(`box.getAttribute("gone")`)
	if result.String() != "null" {
		t.Errorf("Expected null for an absent attribute, got %v", result.String())
	}
}

func TestBindingsAttributeErrorsThrow(t *testing.T) {
	r := newTestRuntime(t, `<div id="box"></div>`)

	result, err := r.RunString(`
		var caught = "";
		try {
			document.getElementById("box").setAttribute("bad name", "x");
		} catch (e) {
			caught = String(e);
		}
		caught;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if !strings.Contains(result.String(), "InvalidCharacter") {
		t.Errorf("Expected a catchable InvalidCharacterError, got %v", result.String())
	}
}

func TestBindingsClassList(t *testing.T) {
	r := newTestRuntime(t, `<div id="box" class="a"></div>`)

	result, err := r.RunString(`
		var cl = document.getElementById("box").classList;
		cl.add("b", "c");
		cl.remove("a");
		cl.toggle("d");
		cl.contains("b") && cl.contains("d") && !cl.contains("a") && cl.length === 3;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if !result.ToBoolean() {
		t.Error("Expected classList operations to apply")
	}

	box := r.Document().GetElementByID("box")
	if got, _ := box.GetAttribute("class"); got != "b c d" {
		t.Errorf("Expected class attribute updated, got %q", got)
	}
}

func TestBindingsTreeEdits(t *testing.T) {
	r := newTestRuntime(t, `<ul id="list"><li id="first">one</li></ul>`)

	_, err := r.RunString(`
		var list = document.getElementById("list");
		var item = document.createElement("li");
		item.textContent = "two";
		item.id = "second";
		list.appendChild(item);
		document.getElementById("first").remove();
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}

	items := r.Document().GetElementsByTagName("li")
	if len(items) != 1 || items[0].Id() != "second" {
		t.Fatalf("Expected only the created item, got %d items", len(items))
	}
	if got := items[0].AsNode().TextContent(); got != "two" {
		t.Errorf("Expected textContent written, got %q", got)
	}

	result, _ := r.RunString(`document.getElementById("list").children.length`)
	if result.ToInteger() != 1 {
		t.Errorf("Expected one child, got %v", result.ToInteger())
	}
}

func TestBindingsEventDispatch(t *testing.T) {
	r := newTestRuntime(t, `<main id="outer"><button id="inner">go</button></main>`)

	result, err := r.RunString(`
		var order = [];
		var outer = document.getElementById("outer");
		var inner = document.getElementById("inner");
		outer.addEventListener("ping", function(e) { order.push("capture:" + e.eventPhase); }, true);
		outer.addEventListener("ping", function(e) { order.push("bubble"); });
		inner.addEventListener("ping", function(e) { order.push("target:" + (e.target === inner)); });
		inner.dispatchEvent(new Event("ping", { bubbles: true }));
		order.join(",");
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.String() != "capture:1,target:true,bubble" {
		t.Errorf("Expected capture, target, bubble order, got %v", result.String())
	}
}

func TestBindingsRemoveEventListener(t *testing.T) {
	r := newTestRuntime(t, `<button id="b">go</button>`)

	result, err := r.RunString(`
		var count = 0;
		var b = document.getElementById("b");
		function onPing() { count++; }
		b.addEventListener("ping", onPing);
		b.addEventListener("ping", onPing);
		b.dispatchEvent(new Event("ping"));
		b.removeEventListener("ping", onPing);
		b.dispatchEvent(new Event("ping"));
		count;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.ToInteger() != 1 {
		t.Errorf("Expected duplicate registration collapsed and removal honored, got %v", result.ToInteger())
	}
}

func TestBindingsOnceListener(t *testing.T) {
	r := newTestRuntime(t, `<button id="b">go</button>`)

	result, err := r.RunString(`
		var count = 0;
		var b = document.getElementById("b");
		b.addEventListener("ping", function() { count++; }, { once: true });
		b.dispatchEvent(new Event("ping"));
		b.dispatchEvent(new Event("ping"));
		count;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.ToInteger() != 1 {
		t.Errorf("Expected a once listener to fire once, got %v", result.ToInteger())
	}
}

func TestBindingsPreventDefault(t *testing.T) {
	r := newTestRuntime(t, `<button id="b">go</button>`)

	result, err := r.RunString(`
		var b = document.getElementById("b");
		b.addEventListener("ping", function(e) { e.preventDefault(); });
		var proceed = b.dispatchEvent(new Event("ping", { cancelable: true }));
		proceed;
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}
	if result.ToBoolean() {
		t.Error("Expected dispatchEvent to report the canceled default")
	}
}

func TestBindingsTextNodes(t *testing.T) {
	r := newTestRuntime(t, `<p id="p">old</p>`)

	_, err := r.RunString(`
		var p = document.getElementById("p");
		var text = document.createTextNode("fresh");
		p.textContent = "";
		p.appendChild(text);
		text.data = "fresher";
	`)
	if err != nil {
		t.Fatalf("RunString failed: %v", err)
	}

	p := r.Document().GetElementByID("p")
	if got := p.AsNode().TextContent(); got != "fresher" {
		t.Errorf("Expected text node edits applied, got %q", got)
	}
}
