package dom

// MutationCallback receives synchronous notifications about tree mutations.
// Callbacks run inline from the mutating call, so they must not mutate the
// tree themselves; queue follow-up work instead.
type MutationCallback interface {
	// OnChildListMutation is called after children are added or removed.
	OnChildListMutation(target *Node, addedNodes, removedNodes []*Node)

	// OnAttributeMutation is called after an attribute changes. hadValue
	// reports whether the attribute existed before the mutation.
	OnAttributeMutation(target *Element, name, oldValue string, hadValue bool)

	// OnCharacterDataMutation is called after text or comment data changes.
	OnCharacterDataMutation(target *Node, oldValue string)
}

// mutationCallbacks stores the registered callbacks per document. Documents
// are single-goroutine, so no locking.
var mutationCallbacks = make(map[*Document][]MutationCallback)

// RegisterMutationCallback registers a callback for mutations anywhere in the
// document's tree.
func RegisterMutationCallback(doc *Document, callback MutationCallback) {
	if doc == nil || callback == nil {
		return
	}
	mutationCallbacks[doc] = append(mutationCallbacks[doc], callback)
}

// UnregisterMutationCallback removes a previously registered callback.
func UnregisterMutationCallback(doc *Document, callback MutationCallback) {
	if doc == nil {
		return
	}
	callbacks := mutationCallbacks[doc]
	for i, cb := range callbacks {
		if cb == callback {
			mutationCallbacks[doc] = append(callbacks[:i], callbacks[i+1:]...)
			return
		}
	}
}

// ClearMutationCallbacks removes all callbacks for a document.
func ClearMutationCallbacks(doc *Document) {
	delete(mutationCallbacks, doc)
}

func notifyChildListMutation(target *Node, addedNodes, removedNodes []*Node) {
	if target == nil || target.ownerDoc == nil {
		return
	}
	for _, cb := range mutationCallbacks[target.ownerDoc] {
		cb.OnChildListMutation(target, addedNodes, removedNodes)
	}
}

func notifyAttributeMutation(target *Element, name, oldValue string, hadValue bool) {
	if target == nil || target.AsNode().ownerDoc == nil {
		return
	}
	for _, cb := range mutationCallbacks[target.AsNode().ownerDoc] {
		cb.OnAttributeMutation(target, name, oldValue, hadValue)
	}
}

func notifyCharacterDataMutation(target *Node, oldValue string) {
	if target == nil || target.ownerDoc == nil {
		return
	}
	for _, cb := range mutationCallbacks[target.ownerDoc] {
		cb.OnCharacterDataMutation(target, oldValue)
	}
}
