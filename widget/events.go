package widget

import "github.com/chrisuehlinger/widgetkit/dom"

// Event names fired by every widget type.
const (
	// EventPropertyChanged fires after a property transition, API- and
	// DOM-sourced alike. Its Change field carries the transition.
	EventPropertyChanged = "propertyChanged"
	// EventDestroy fires once, at the start of teardown.
	EventDestroy = "destroy"
)

// Event is delivered to widget event handlers.
type Event struct {
	// Type is the semantic event name.
	Type string
	// Widget is the instance the event fired on.
	Widget *Widget
	// Change carries the property transition for EventPropertyChanged and
	// for descriptor change events; nil otherwise.
	Change *PropertyChange
	// DOMEvent carries the originating node event for bridged events such
	// as "press"; nil otherwise.
	DOMEvent *dom.Event
}

// PropertyChange describes one property transition.
type PropertyChange struct {
	Name string
	Old  any
	New  any
}

// Handler handles a widget event.
type Handler func(*Event)

type handlerEntry struct {
	id      int
	typ     string
	fn      Handler
	removed bool
}

// Subscription is a handle to a registered handler.
type Subscription struct {
	w  *Widget
	id int
}

// Detach unregisters the handler. Detaching twice is a no-op.
func (s *Subscription) Detach() {
	if s == nil || s.w == nil {
		return
	}
	for i, entry := range s.w.handlers {
		if entry.id == s.id {
			entry.removed = true
			s.w.handlers = append(s.w.handlers[:i], s.w.handlers[i+1:]...)
			return
		}
	}
}

// On registers a handler for the named semantic event and returns a handle
// for detaching it. Handlers run synchronously, in subscription order.
func (w *Widget) On(eventType string, fn Handler) *Subscription {
	if fn == nil || w.destroyed {
		return &Subscription{}
	}
	w.nextSubID++
	entry := &handlerEntry{id: w.nextSubID, typ: eventType, fn: fn}
	w.handlers = append(w.handlers, entry)
	return &Subscription{w: w, id: entry.id}
}

// emit delivers an event to the current subscribers. Iteration works on a
// snapshot, so handlers may subscribe or detach freely; a handler detached
// mid-delivery does not run.
func (w *Widget) emit(ev *Event) {
	if w.destroyed {
		return
	}
	ev.Widget = w
	snapshot := append([]*handlerEntry(nil), w.handlers...)
	for _, entry := range snapshot {
		if entry.removed || entry.typ != ev.Type {
			continue
		}
		entry.fn(ev)
	}
}
