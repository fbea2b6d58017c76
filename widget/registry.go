package widget

import (
	"sync"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// bound is the process-wide node-to-instance side table. Keyed by node
// identity; nodes are never keys for more than one live widget.
var (
	boundMu sync.Mutex
	bound   = make(map[*dom.Node]*Widget)
)

// GetByNode returns the live widget bound to the node, or nil.
func GetByNode(node *dom.Node) *Widget {
	if node == nil {
		return nil
	}
	boundMu.Lock()
	defer boundMu.Unlock()
	return bound[node]
}

// claimNode records the node-to-widget binding. It fails with
// NodeAlreadyBound when the node already hosts a different live widget.
func claimNode(node *dom.Node, w *Widget) error {
	boundMu.Lock()
	defer boundMu.Unlock()
	if existing, ok := bound[node]; ok && existing != w {
		return errNodeAlreadyBound("node <%s> is already bound to a %s widget", node.NodeName(), existing.typ.Name)
	}
	bound[node] = w
	return nil
}

// releaseNode removes the binding if it still points at w. Idempotent.
func releaseNode(node *dom.Node, w *Widget) {
	boundMu.Lock()
	defer boundMu.Unlock()
	if bound[node] == w {
		delete(bound, node)
	}
}
