package dom

import "strings"

// Document is a Node of type DocumentNode and the factory for every other
// node in its tree.
type Document Node

// NewDocument creates an empty document.
func NewDocument() *Document {
	node := newNode(DocumentNode, nil)
	node.documentData = &documentData{}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the document as a *Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode.
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// CreateElement creates a detached element with the given tag name. Errors
// are swallowed; use CreateElementWithError when they matter.
func (d *Document) CreateElement(tagName string) *Element {
	result, _ := d.CreateElementWithError(tagName)
	return result
}

// CreateElementWithError creates a detached element, validating the tag name
// first.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidTagName(tagName) {
		return nil, ErrInvalidCharacter("The tag name provided is not a valid name.")
	}
	node := newNode(ElementNode, d)
	node.elementData = &elementData{localName: strings.ToLower(tagName)}
	return (*Element)(node), nil
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, d)
	node.textData = &data
	return node
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, d)
	node.textData = &data
	return node
}

// CreateDoctype creates a detached doctype node with the given name.
func (d *Document) CreateDoctype(name string) *Node {
	node := newNode(DoctypeNode, d)
	node.textData = &name
	return node
}

// Doctype returns the document's doctype node, or nil.
func (d *Document) Doctype() *Node {
	for c := d.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == DoctypeNode {
			return c
		}
	}
	return nil
}

// DocumentElement returns the root element of the document, or nil.
func (d *Document) DocumentElement() *Element {
	for c := d.AsNode().firstChild; c != nil; c = c.nextSibling {
		if el := c.AsElement(); el != nil {
			return el
		}
	}
	return nil
}

// Head returns the document's head element, or nil.
func (d *Document) Head() *Element {
	return d.rootChild("head")
}

// Body returns the document's body element, or nil.
func (d *Document) Body() *Element {
	return d.rootChild("body")
}

func (d *Document) rootChild(localName string) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.AsNode().firstChild; c != nil; c = c.nextSibling {
		if el := c.AsElement(); el != nil && el.LocalName() == localName {
			return el
		}
	}
	return nil
}

// GetElementByID returns the first element in document order whose id
// attribute matches, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.AsNode().Walk(func(n *Node) bool {
		if el := n.AsElement(); el != nil && el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// GetElementsByTagName returns the document's elements with the given tag
// name, in document order. "*" matches every element.
func (d *Document) GetElementsByTagName(name string) []*Element {
	return collectByTagName(d.AsNode(), name)
}

// GetElementsByClassName returns the document's elements carrying all of
// the space-separated class names, in document order.
func (d *Document) GetElementsByClassName(classNames string) []*Element {
	return collectByClassName(d.AsNode(), classNames)
}

func isValidTagName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
