package dom

// EventPhase is the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone EventPhase = iota
	EventPhaseCapturing
	EventPhaseAtTarget
	EventPhaseBubbling
)

// Event is a dispatched DOM event.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool

	target        *Node
	currentTarget *Node
	phase         EventPhase

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// EventInit configures a new event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
}

// NewEvent creates an event ready for dispatch.
func NewEvent(eventType string, init EventInit) *Event {
	return &Event{Type: eventType, Bubbles: init.Bubbles, Cancelable: init.Cancelable}
}

// Target returns the node the event was dispatched on.
func (e *Event) Target() *Node {
	return e.target
}

// CurrentTarget returns the node whose listeners are currently being invoked.
func (e *Event) CurrentTarget() *Node {
	return e.currentTarget
}

// EventPhase returns the current dispatch phase.
func (e *Event) EventPhase() EventPhase {
	return e.phase
}

// PreventDefault marks the event's default action as cancelled. It has no
// effect on non-cancelable events.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching further nodes. Remaining
// listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation prevents any further listener from running.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

// EventListener handles a dispatched event.
type EventListener func(*Event)

// ListenerOptions configures listener registration.
type ListenerOptions struct {
	// Capture invokes the listener during the capture phase instead of the
	// target and bubble phases.
	Capture bool
	// Once removes the listener after its first invocation.
	Once bool
}

type listenerEntry struct {
	id      int
	typ     string
	fn      EventListener
	options ListenerOptions
	removed bool
}

type listenerTable struct {
	entries []*listenerEntry
}

// Listener is a handle to a registered event listener.
type Listener struct {
	node *Node
	id   int
}

// Remove unregisters the listener. Removing twice is a no-op.
func (l *Listener) Remove() {
	if l == nil || l.node == nil || l.node.listeners == nil {
		return
	}
	table := l.node.listeners
	for i, entry := range table.entries {
		if entry.id == l.id {
			entry.removed = true
			table.entries = append(table.entries[:i], table.entries[i+1:]...)
			return
		}
	}
}

// AddEventListener registers a listener for the given event type and returns
// a handle for removing it.
func (n *Node) AddEventListener(eventType string, fn EventListener, opts ...ListenerOptions) *Listener {
	if fn == nil {
		return &Listener{}
	}
	var options ListenerOptions
	if len(opts) > 0 {
		options = opts[0]
	}
	if n.listeners == nil {
		n.listeners = &listenerTable{}
	}
	doc := n.document()
	doc.AsNode().documentData.nextListenerID++
	entry := &listenerEntry{
		id:      doc.AsNode().documentData.nextListenerID,
		typ:     eventType,
		fn:      fn,
		options: options,
	}
	n.listeners.entries = append(n.listeners.entries, entry)
	return &Listener{node: n, id: entry.id}
}

// HasEventListeners reports whether any listener is registered for the event
// type.
func (n *Node) HasEventListeners(eventType string) bool {
	if n.listeners == nil {
		return false
	}
	for _, entry := range n.listeners.entries {
		if entry.typ == eventType {
			return true
		}
	}
	return false
}

// DispatchEvent dispatches the event on this node, running capture, target,
// and bubble phases. It returns false when a listener called PreventDefault.
func (n *Node) DispatchEvent(event *Event) bool {
	event.target = n
	event.defaultPrevented = false
	event.propagationStopped = false
	event.immediateStopped = false

	// Ancestor path from root down to (excluding) the target.
	var path []*Node
	for p := n.parentNode; p != nil; p = p.parentNode {
		path = append([]*Node{p}, path...)
	}

	event.phase = EventPhaseCapturing
	for _, node := range path {
		node.invokeListeners(event)
		if event.propagationStopped {
			return finishDispatch(event)
		}
	}

	event.phase = EventPhaseAtTarget
	n.invokeListeners(event)
	if event.propagationStopped || !event.Bubbles {
		return finishDispatch(event)
	}

	event.phase = EventPhaseBubbling
	for i := len(path) - 1; i >= 0; i-- {
		path[i].invokeListeners(event)
		if event.propagationStopped {
			break
		}
	}
	return finishDispatch(event)
}

func finishDispatch(event *Event) bool {
	event.phase = EventPhaseNone
	event.currentTarget = nil
	return !event.defaultPrevented
}

// invokeListeners runs this node's listeners that match the event's phase.
func (n *Node) invokeListeners(event *Event) {
	if n.listeners == nil {
		return
	}
	event.currentTarget = n

	// Snapshot so listeners can add or remove listeners mid-dispatch.
	snapshot := append([]*listenerEntry(nil), n.listeners.entries...)
	for _, entry := range snapshot {
		if entry.removed || entry.typ != event.Type {
			continue
		}
		if event.phase == EventPhaseCapturing && !entry.options.Capture {
			continue
		}
		if event.phase == EventPhaseBubbling && entry.options.Capture {
			continue
		}
		if entry.options.Once {
			(&Listener{node: n, id: entry.id}).Remove()
		}
		entry.fn(event)
		if event.immediateStopped {
			return
		}
	}
}
