package widget

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// Widget is one live instance of a Type, holding canonical property state
// and, when bound, mirroring it onto a host node.
type Widget struct {
	id    string
	typ   *Type
	node  *dom.Element
	state map[string]any

	handlers  []*handlerEntry
	nextSubID int

	domListeners []*dom.Listener
	binder       *binder

	destroying bool
	destroyed  bool
}

// Options configures widget construction.
type Options struct {
	// SrcNode is an existing element to enhance. The widget extracts
	// initial state from its markup and binds to it. nil constructs an
	// unbound instance for later RenderTo.
	SrcNode *dom.Element
	// Properties are explicit initial values. They beat both extracted
	// markup values and descriptor defaults.
	Properties map[string]any
}

// New creates a widget instance of the given type.
//
// With a SrcNode the progressive-enhancement path runs: markup extraction,
// then the three-source merge, then canonical state is written back to the
// node (write-if-different), and the node is registered. Construction fails
// with NodeAlreadyBound before any side effect if the node already hosts a
// widget, and with InvalidPropertyValue if an explicit value fails its
// descriptor; explicit names no descriptor declares are ignored, matching
// the tolerance of declarative property bags.
func New(t *Type, opts Options) (*Widget, error) {
	if t == nil {
		return nil, fmt.Errorf("nil widget type")
	}

	explicit := make(map[string]any, len(opts.Properties))
	for name, value := range opts.Properties {
		desc := t.Descriptor(name)
		if desc == nil {
			continue
		}
		canonical, err := coerceValue(desc, value)
		if err != nil {
			return nil, err
		}
		explicit[name] = canonical
	}

	w := &Widget{
		id:  "wk_" + ulid.Make().String(),
		typ: t,
	}

	if opts.SrcNode == nil {
		w.state = Merge(t.Descriptors, defaultsOf(t.Descriptors), nil, explicit)
		return w, nil
	}

	if err := claimNode(opts.SrcNode.AsNode(), w); err != nil {
		return nil, err
	}

	extracted := Extract(opts.SrcNode, t.Descriptors)
	w.state = Merge(t.Descriptors, defaultsOf(t.Descriptors), extracted, explicit)
	w.bind(opts.SrcNode)
	return w, nil
}

// bind attaches the widget to its host node: binder registration, canonical
// state write-back, DOM event bridges, and the type's Attach hook. The node
// must already be claimed in the registry.
func (w *Widget) bind(node *dom.Element) {
	w.node = node
	w.binder = binderFor(node.AsNode().OwnerDocument())
	w.binder.retain()

	for i := range w.typ.Descriptors {
		d := &w.typ.Descriptors[i]
		if value, ok := w.state[d.Name]; ok {
			w.applyFacet(d, value)
		}
	}

	for domEvent, semantic := range w.typ.DOMEvents {
		event := semantic
		listener := node.AsNode().AddEventListener(domEvent, func(e *dom.Event) {
			w.emit(&Event{Type: event, DOMEvent: e})
		})
		w.domListeners = append(w.domListeners, listener)
	}

	if w.typ.Attach != nil {
		w.typ.Attach(w)
	}
}

// ID returns the instance id, unique per process.
func (w *Widget) ID() string {
	return w.id
}

// Type returns the widget's type.
func (w *Widget) Type() *Type {
	return w.typ
}

// Node returns the bound host element, or nil for an unbound instance.
func (w *Widget) Node() *dom.Element {
	return w.node
}

// Get returns the current value of a property and whether it is set.
func (w *Widget) Get(name string) (any, bool) {
	value, ok := w.state[name]
	return value, ok
}

// Properties returns a snapshot of the current state.
func (w *Widget) Properties() map[string]any {
	snapshot := make(map[string]any, len(w.state))
	for name, value := range w.state {
		snapshot[name] = value
	}
	return snapshot
}

// Set assigns one property. Invalid values and undeclared names fail with
// InvalidPropertyValue. Assigning the current value is a complete no-op: no
// DOM write, no events. Otherwise the node facet is updated first, then
// propertyChanged fires, then the descriptor's change event. On a destroyed
// widget Set does nothing.
func (w *Widget) Set(name string, value any) error {
	if w.destroyed {
		return nil
	}
	desc := w.typ.Descriptor(name)
	if desc == nil {
		return errInvalidPropertyValue("type %q has no property %q", w.typ.Name, name)
	}
	canonical, err := coerceValue(desc, value)
	if err != nil {
		return err
	}
	return w.set(desc, canonical)
}

// set runs the mutator path for an already-canonical value.
func (w *Widget) set(desc *Descriptor, value any) error {
	old, had := w.state[desc.Name]
	if had && valuesEqual(old, value) {
		return nil
	}
	w.state[desc.Name] = value
	w.applyFacet(desc, value)

	change := &PropertyChange{Name: desc.Name, Old: old, New: value}
	w.emit(&Event{Type: EventPropertyChanged, Change: change})
	if desc.ChangeEvent != "" {
		w.emit(&Event{Type: desc.ChangeEvent, Change: change})
	}
	return nil
}

// SetAll assigns a batch of properties. Every value is validated before any
// is applied; a failure leaves state and markup untouched. All DOM writes
// complete before any event fires, and events follow descriptor table order.
func (w *Widget) SetAll(values map[string]any) error {
	if w.destroyed {
		return nil
	}

	type change struct {
		desc  *Descriptor
		old   any
		value any
	}

	for name := range values {
		if w.typ.Descriptor(name) == nil {
			return errInvalidPropertyValue("type %q has no property %q", w.typ.Name, name)
		}
	}

	var batch []change
	for i := range w.typ.Descriptors {
		desc := &w.typ.Descriptors[i]
		value, ok := values[desc.Name]
		if !ok {
			continue
		}
		canonical, err := coerceValue(desc, value)
		if err != nil {
			return err
		}
		old, had := w.state[desc.Name]
		if had && valuesEqual(old, canonical) {
			continue
		}
		batch = append(batch, change{desc: desc, old: old, value: canonical})
	}

	for _, c := range batch {
		w.state[c.desc.Name] = c.value
		w.applyFacet(c.desc, c.value)
	}
	for _, c := range batch {
		pc := &PropertyChange{Name: c.desc.Name, Old: c.old, New: c.value}
		w.emit(&Event{Type: EventPropertyChanged, Change: pc})
		if c.desc.ChangeEvent != "" {
			w.emit(&Event{Type: c.desc.ChangeEvent, Change: pc})
		}
	}
	return nil
}

// Enable sets the conventional disabled property to false.
func (w *Widget) Enable() error {
	return w.Set("disabled", false)
}

// Disable sets the conventional disabled property to true.
func (w *Widget) Disable() error {
	return w.Set("disabled", true)
}

// RenderTo fabricates a host node for an unbound widget, applies the full
// canonical state to it, appends it to container, and binds. The element
// comes from the type's TagName (default div) with BaseClass applied.
func (w *Widget) RenderTo(container *dom.Element) error {
	if w.destroyed {
		return nil
	}
	if w.node != nil {
		return errNodeAlreadyBound("widget %s is already bound to a node", w.id)
	}
	if container == nil {
		return fmt.Errorf("renderTo: nil container")
	}
	doc := container.AsNode().OwnerDocument()

	tagName := w.typ.TagName
	if tagName == "" {
		tagName = "div"
	}
	el, err := doc.CreateElementWithError(tagName)
	if err != nil {
		return err
	}
	if w.typ.BaseClass != "" {
		el.ClassList().Add(w.typ.BaseClass)
	}

	if err := claimNode(el.AsNode(), w); err != nil {
		return err
	}
	w.bind(el)
	container.AsNode().AppendChild(el.AsNode())
	return nil
}

// Destroy tears the widget down: the destroy event fires first, then DOM
// event bridges detach, the mutation subscription is cancelled, and the
// registry entry clears. The host node and its markup are left as they are.
// Destroy is idempotent, and no event ever fires after it returns.
func (w *Widget) Destroy() {
	if w.destroyed || w.destroying {
		return
	}
	w.destroying = true
	w.emit(&Event{Type: EventDestroy})
	w.destroyed = true

	for _, listener := range w.domListeners {
		listener.Remove()
	}
	w.domListeners = nil

	if w.node != nil {
		releaseNode(w.node.AsNode(), w)
		w.binder.release()
		w.binder = nil
	}
	w.handlers = nil
}

// Destroyed reports whether Destroy has run.
func (w *Widget) Destroyed() bool {
	return w.destroyed
}

// applyFacet writes one property's canonical value to its markup facet,
// write-if-different. The write is wrapped in a binder self-write window so
// the resulting mutation record is recognized as the widget's own.
func (w *Widget) applyFacet(desc *Descriptor, value any) {
	if desc.Mapping == nil || w.node == nil {
		return
	}
	node := w.node.AsNode()

	switch desc.Mapping.kind {
	case mappingAttribute:
		serialized := formatValue(value)
		if current, ok := w.node.GetAttribute(desc.Mapping.name); ok && current == serialized {
			return
		}
		f := attributeFacet(node, desc.Mapping.name)
		w.binder.beginSelfWrite(f)
		w.node.SetAttribute(desc.Mapping.name, serialized)
		w.binder.endSelfWrite(f)

	case mappingBoolAttribute:
		present, _ := value.(bool)
		if w.node.HasAttribute(desc.Mapping.name) == present {
			return
		}
		f := attributeFacet(node, desc.Mapping.name)
		w.binder.beginSelfWrite(f)
		if present {
			w.node.SetAttribute(desc.Mapping.name, "")
		} else {
			w.node.RemoveAttribute(desc.Mapping.name)
		}
		w.binder.endSelfWrite(f)

	case mappingClassToken:
		present, _ := value.(bool)
		if w.node.ClassList().Contains(desc.Mapping.name) == present {
			return
		}
		f := attributeFacet(node, "class")
		w.binder.beginSelfWrite(f)
		if present {
			w.node.ClassList().Add(desc.Mapping.name)
		} else {
			w.node.ClassList().Remove(desc.Mapping.name)
		}
		w.binder.endSelfWrite(f)

	case mappingTextContent:
		text, _ := value.(string)
		if node.TextContent() == text {
			return
		}
		f := textFacet(node)
		w.binder.beginSelfWrite(f)
		node.SetTextContent(text)
		w.binder.endSelfWrite(f)
	}
}
