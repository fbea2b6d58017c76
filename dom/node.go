// Package dom implements a retained HTML document tree scoped to widget
// hosting: elements with attributes and class tokens, text content, event
// dispatch, and synchronous mutation notifications. It is the substrate the
// widget engine reads initial state from and writes canonical state back to.
package dom

import "strings"

// Node is a node in the document tree. Element, Text, Comment, and Document
// are all represented by Node; type-specific data hangs off the node based on
// its NodeType.
type Node struct {
	nodeType NodeType
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (at most one is non-nil).
	elementData  *elementData
	textData     *string
	documentData *documentData

	// Lazily created event listener table; see events.go.
	listeners *listenerTable
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName string
	attrs     []Attr
	classList *TokenList
}

// documentData holds data specific to Document nodes.
type documentData struct {
	// nextListenerID seeds listener ids for the whole tree so detach
	// handles stay unique across nodes.
	nextListenerID int
}

func newNode(nodeType NodeType, ownerDoc *Document) *Node {
	return &Node{nodeType: nodeType, ownerDoc: ownerDoc}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node: the uppercase tag name for elements,
// "#text" for text nodes, "#comment" for comments, "#document" for documents.
func (n *Node) NodeName() string {
	switch n.nodeType {
	case ElementNode:
		return strings.ToUpper(n.elementData.localName)
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	case DoctypeNode:
		return n.Data()
	}
	return ""
}

// OwnerDocument returns the Document that owns this node, or nil for a
// Document node itself.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node, or nil.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent as an Element, or nil if the parent is not
// an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node, or nil.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes reports whether this node has any children.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildNodes returns a snapshot slice of the current children.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// AsElement returns the node as an *Element, or nil if it is not an element.
func (n *Node) AsElement() *Element {
	if n.nodeType == ElementNode {
		return (*Element)(n)
	}
	return nil
}

// AsDocument returns the node as a *Document, or nil if it is not a document.
func (n *Node) AsDocument() *Document {
	if n.nodeType == DocumentNode {
		return (*Document)(n)
	}
	return nil
}

// IsConnected reports whether the node is attached to its owner document's
// tree.
func (n *Node) IsConnected() bool {
	for p := n; p != nil; p = p.parentNode {
		if p.nodeType == DocumentNode {
			return true
		}
	}
	return false
}

// Contains reports whether other is an inclusive descendant of this node.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parentNode {
		if p == n {
			return true
		}
	}
	return false
}

// AppendChild adds a node to the end of this node's children and returns it.
// Errors are swallowed; use AppendChildWithError when they matter.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of this node's children.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts newChild before refChild (appends when refChild is
// nil) and returns the inserted node. Errors are swallowed; use
// InsertBeforeWithError when they matter.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts newChild before refChild, validating the
// hierarchy first.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if newChild == nil {
		return nil, ErrHierarchyRequest("The node to insert is nil.")
	}
	if n.nodeType != ElementNode && n.nodeType != DocumentNode {
		return nil, ErrHierarchyRequest("This node type cannot have children.")
	}
	if newChild.nodeType == DocumentNode {
		return nil, ErrHierarchyRequest("A Document cannot be inserted into another node.")
	}
	if newChild.nodeType == DoctypeNode && n.nodeType != DocumentNode {
		return nil, ErrHierarchyRequest("A doctype can only be inserted into a Document.")
	}
	if newChild.Contains(n) {
		return nil, ErrHierarchyRequest("The new child contains the parent.")
	}
	if refChild != nil && refChild.parentNode != n {
		return nil, ErrNotFound("The reference child is not a child of this node.")
	}

	// Reparenting triggers a removal notification of its own.
	if newChild.parentNode != nil {
		newChild.parentNode.RemoveChild(newChild)
	}

	newChild.parentNode = n
	adopt(newChild, n.document())

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.prevSibling = refChild.prevSibling
		newChild.nextSibling = refChild
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}

	notifyChildListMutation(n, []*Node{newChild}, nil)
	return newChild, nil
}

// RemoveChild removes a child node and returns it. Errors are swallowed; use
// RemoveChildWithError when they matter.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil

	notifyChildListMutation(n, nil, []*Node{child})
	return child, nil
}

// ReplaceChild replaces oldChild with newChild and returns oldChild. Errors
// are swallowed; use ReplaceChildWithError when they matter.
func (n *Node) ReplaceChild(newChild, oldChild *Node) *Node {
	result, _ := n.ReplaceChildWithError(newChild, oldChild)
	return result
}

// ReplaceChildWithError replaces oldChild with newChild in this node's
// children.
func (n *Node) ReplaceChildWithError(newChild, oldChild *Node) (*Node, error) {
	if oldChild == nil || oldChild.parentNode != n {
		return nil, ErrNotFound("The node to be replaced is not a child of this node.")
	}
	ref := oldChild.nextSibling
	if _, err := n.RemoveChildWithError(oldChild); err != nil {
		return nil, err
	}
	if _, err := n.InsertBeforeWithError(newChild, ref); err != nil {
		return nil, err
	}
	return oldChild, nil
}

// TextContent returns the concatenated text of this node and its descendants.
// For text and comment nodes it is the node's data.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case TextNode, CommentNode:
		return n.Data()
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == TextNode {
			sb.WriteString(c.Data())
		} else {
			c.collectText(sb)
		}
	}
}

// SetTextContent replaces all children with a single text node holding value
// (or no children when value is empty). On text and comment nodes it sets the
// node's data.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case TextNode, CommentNode:
		n.SetData(value)
		return
	case ElementNode, DocumentNode:
		var removed []*Node
		for c := n.firstChild; c != nil; c = c.nextSibling {
			removed = append(removed, c)
		}
		for _, c := range removed {
			c.parentNode = nil
			c.prevSibling = nil
			c.nextSibling = nil
		}
		n.firstChild = nil
		n.lastChild = nil

		var added []*Node
		if value != "" {
			text := n.document().CreateTextNode(value)
			text.parentNode = n
			n.firstChild = text
			n.lastChild = text
			added = []*Node{text}
		}
		if len(removed) > 0 || len(added) > 0 {
			notifyChildListMutation(n, added, removed)
		}
	}
}

// Data returns the character data of a text or comment node, or "".
func (n *Node) Data() string {
	if n.textData != nil {
		return *n.textData
	}
	return ""
}

// SetData sets the character data of a text or comment node. It is a no-op on
// other node types.
func (n *Node) SetData(value string) {
	if n.nodeType != TextNode && n.nodeType != CommentNode {
		return
	}
	oldValue := ""
	if n.textData != nil {
		oldValue = *n.textData
	}
	n.textData = &value
	notifyCharacterDataMutation(n, oldValue)
}

// Walk visits this node and every descendant in document order. Returning
// false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// document resolves the owning document for this node, including the node
// itself when it is a document.
func (n *Node) document() *Document {
	if n.nodeType == DocumentNode {
		return (*Document)(n)
	}
	return n.ownerDoc
}

// adopt moves a subtree into a new owner document.
func adopt(n *Node, doc *Document) {
	if doc == nil || n.ownerDoc == doc {
		return
	}
	n.ownerDoc = doc
	for c := n.firstChild; c != nil; c = c.nextSibling {
		adopt(c, doc)
	}
}
