package widget

import (
	"github.com/chrisuehlinger/widgetkit/dom"
	"github.com/chrisuehlinger/widgetkit/loop"
)

// scheduler carries reconcile and teardown tasks from mutation notifications
// to the host checkpoint. Hosts with their own event loop (the js runtime)
// install it here so delivery interleaves with script turns.
var scheduler = loop.New()

// SetScheduler replaces the delivery scheduler. Pending tasks on the previous
// scheduler are not migrated.
func SetScheduler(l *loop.Loop) {
	if l != nil {
		scheduler = l
	}
}

// Flush runs the host checkpoint: every queued markup-to-state reconcile and
// detach teardown is delivered, in DOM mutation order.
func Flush() {
	scheduler.Flush()
}

// facet identifies one markup storage location on one node: a single
// attribute, or the node's text content. Class token mappings share the
// class attribute facet.
type facet struct {
	node *dom.Node
	attr string // attribute name, or "" for text content
}

func attributeFacet(node *dom.Node, name string) facet {
	return facet{node: node, attr: name}
}

func textFacet(node *dom.Node) facet {
	return facet{node: node}
}

// binder watches one document for mutations and routes them: records caused
// by widget writes are recognized and dropped, external records queue
// reconcile tasks, and removals queue detach teardown checks.
//
// Self-recognition uses a generation counter. Every widget write bumps the
// generation and stamps the target facet before touching the DOM; the
// notification arrives synchronously during the write, and a record whose
// facet stamp equals the current generation originated from the widget
// itself. The stamp is cleared when the write returns, so later external
// mutations of the same facet can never match a stale generation.
type binder struct {
	doc        *dom.Document
	gen        uint64
	selfWrites map[facet]uint64
	count      int // live widgets bound in this document
}

// binders holds the per-document binder. Like the dom package's callback
// table, documents are single-goroutine, so no locking.
var binders = make(map[*dom.Document]*binder)

// binderFor returns the document's binder, creating and registering it on
// first use.
func binderFor(doc *dom.Document) *binder {
	if b, ok := binders[doc]; ok {
		return b
	}
	b := &binder{doc: doc, selfWrites: make(map[facet]uint64)}
	binders[doc] = b
	dom.RegisterMutationCallback(doc, b)
	return b
}

// retain records one more bound widget in the document.
func (b *binder) retain() {
	b.count++
}

// release records a widget unbinding; the last release unregisters the
// binder from the document.
func (b *binder) release() {
	b.count--
	if b.count <= 0 {
		dom.UnregisterMutationCallback(b.doc, b)
		delete(binders, b.doc)
	}
}

// beginSelfWrite opens a widget write to the facet. Pair with endSelfWrite.
func (b *binder) beginSelfWrite(f facet) {
	b.gen++
	b.selfWrites[f] = b.gen
}

// endSelfWrite closes the write opened by beginSelfWrite.
func (b *binder) endSelfWrite(f facet) {
	delete(b.selfWrites, f)
}

// isSelf reports whether a record on the facet originated from an in-flight
// widget write.
func (b *binder) isSelf(f facet) bool {
	stamp, ok := b.selfWrites[f]
	return ok && stamp == b.gen
}

// OnAttributeMutation implements dom.MutationCallback.
func (b *binder) OnAttributeMutation(target *dom.Element, name, oldValue string, hadValue bool) {
	if b.isSelf(attributeFacet(target.AsNode(), name)) {
		return
	}
	w := GetByNode(target.AsNode())
	if w == nil {
		return
	}
	for i := range w.typ.Descriptors {
		d := &w.typ.Descriptors[i]
		if !d.BindFromDOM || d.Mapping == nil || !d.Mapping.observesAttribute(name) {
			continue
		}
		desc := d
		scheduler.QueueMicrotask(func() { w.reconcile(desc) })
	}
}

// OnChildListMutation implements dom.MutationCallback. Removals feed the
// implicit teardown hook; the record itself is a text content change for the
// nearest bound ancestor.
func (b *binder) OnChildListMutation(target *dom.Node, added, removed []*dom.Node) {
	for _, node := range removed {
		scheduleDetachChecks(node)
	}

	if b.isSelf(textFacet(target)) {
		return
	}
	b.scheduleTextReconcile(target)
}

// OnCharacterDataMutation implements dom.MutationCallback.
func (b *binder) OnCharacterDataMutation(target *dom.Node, oldValue string) {
	parent := target.ParentNode()
	if parent == nil {
		return
	}
	if b.isSelf(textFacet(parent)) {
		return
	}
	b.scheduleTextReconcile(parent)
}

// scheduleTextReconcile queues reconciles for text-mapped properties of the
// nearest bound widget at or above the mutated node. Text content aggregates
// the whole subtree, so a deep change still belongs to the ancestor's facet.
func (b *binder) scheduleTextReconcile(node *dom.Node) {
	w := nearestBound(node)
	if w == nil {
		return
	}
	for i := range w.typ.Descriptors {
		d := &w.typ.Descriptors[i]
		if !d.BindFromDOM || d.Mapping == nil || d.Mapping.kind != mappingTextContent {
			continue
		}
		desc := d
		scheduler.QueueMicrotask(func() { w.reconcile(desc) })
	}
}

// nearestBound returns the widget bound to the node or its closest bound
// ancestor.
func nearestBound(node *dom.Node) *Widget {
	for n := node; n != nil; n = n.ParentNode() {
		if w := GetByNode(n); w != nil {
			return w
		}
	}
	return nil
}

// scheduleDetachChecks walks a removed subtree and queues a teardown check
// for every bound widget in it. The check runs at the checkpoint, so a node
// re-attached before then stays alive.
func scheduleDetachChecks(root *dom.Node) {
	root.Walk(func(n *dom.Node) bool {
		if w := GetByNode(n); w != nil {
			scheduler.QueueMicrotask(func() {
				if !w.destroyed && w.node != nil && !w.node.AsNode().IsConnected() {
					w.Destroy()
				}
			})
		}
		return true
	})
}

// reconcile re-reads one property from the widget's markup and runs it
// through the normal mutator path, so DOM-sourced changes fire the same
// events as API mutation. Values that no longer extract (a removed
// attribute, uncoercible text) leave the state untouched.
func (w *Widget) reconcile(desc *Descriptor) {
	if w.destroyed || w.node == nil {
		return
	}
	value, ok := extractProperty(w.node, desc)
	if !ok {
		return
	}
	w.set(desc, value)
}
