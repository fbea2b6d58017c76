package dom

import "strings"

// Element is a Node of type ElementNode. The conversion follows the node's
// identity, so (*Element)(n) and n address the same tree position.
type Element Node

// Attr is a single attribute name/value pair.
type Attr struct {
	Name  string
	Value string
}

// AsNode returns the element as a *Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode.
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// NodeName returns the tag name, same as TagName.
func (e *Element) NodeName() string {
	return e.TagName()
}

// TagName returns the uppercase tag name.
func (e *Element) TagName() string {
	return strings.ToUpper(e.elementData.localName)
}

// LocalName returns the lowercase tag name.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// GetAttribute returns the attribute's value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	name = normalizeAttributeName(name)
	for _, attr := range e.elementData.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// SetAttribute sets an attribute, adding it if absent. Errors are swallowed;
// use SetAttributeWithError when they matter.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets an attribute, validating the name first.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !isValidAttributeName(name) {
		return ErrInvalidCharacter("The attribute name is not valid.")
	}
	name = normalizeAttributeName(name)
	for i, attr := range e.elementData.attrs {
		if attr.Name == name {
			oldValue := attr.Value
			if oldValue == value {
				// Spurious write: the stored value is already
				// the target, so observers never hear about it.
				return nil
			}
			e.elementData.attrs[i].Value = value
			notifyAttributeMutation(e, name, oldValue, true)
			return nil
		}
	}
	e.elementData.attrs = append(e.elementData.attrs, Attr{Name: name, Value: value})
	notifyAttributeMutation(e, name, "", false)
	return nil
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = normalizeAttributeName(name)
	for i, attr := range e.elementData.attrs {
		if attr.Name == name {
			oldValue := attr.Value
			e.elementData.attrs = append(e.elementData.attrs[:i], e.elementData.attrs[i+1:]...)
			notifyAttributeMutation(e, name, oldValue, true)
			return
		}
	}
}

// ToggleAttribute adds a boolean attribute when absent and removes it when
// present, returning whether the attribute is present afterwards. When force
// is given it dictates the final state.
func (e *Element) ToggleAttribute(name string, force ...bool) bool {
	present := e.HasAttribute(name)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}
	if want && !present {
		e.SetAttribute(name, "")
	} else if !want && present {
		e.RemoveAttribute(name)
	}
	return want
}

// Attributes returns a snapshot of the element's attributes in document
// order.
func (e *Element) Attributes() []Attr {
	return append([]Attr(nil), e.elementData.attrs...)
}

// Id returns the value of the id attribute.
func (e *Element) Id() string {
	value, _ := e.GetAttribute("id")
	return value
}

// SetId sets the id attribute.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the raw value of the class attribute.
func (e *Element) ClassName() string {
	value, _ := e.GetAttribute("class")
	return value
}

// SetClassName replaces the class attribute wholesale.
func (e *Element) SetClassName(value string) {
	e.SetAttribute("class", value)
}

// ClassList returns a live TokenList view over the class attribute. The same
// list is returned every call.
func (e *Element) ClassList() *TokenList {
	if e.elementData.classList == nil {
		e.elementData.classList = &TokenList{element: e, attrName: "class"}
	}
	return e.elementData.classList
}

// Children returns a snapshot of the element children, in order.
func (e *Element) Children() []*Element {
	var children []*Element
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		if el := c.AsElement(); el != nil {
			children = append(children, el)
		}
	}
	return children
}

// FirstElementChild returns the first child that is an element, or nil.
func (e *Element) FirstElementChild() *Element {
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		if el := c.AsElement(); el != nil {
			return el
		}
	}
	return nil
}

// NextElementSibling returns the next sibling that is an element, or nil.
func (e *Element) NextElementSibling() *Element {
	for s := e.AsNode().nextSibling; s != nil; s = s.nextSibling {
		if el := s.AsElement(); el != nil {
			return el
		}
	}
	return nil
}

// GetElementsByTagName returns the descendant elements with the given tag
// name, in document order. "*" matches every element.
func (e *Element) GetElementsByTagName(name string) []*Element {
	return collectByTagName(e.AsNode(), name)
}

// GetElementsByClassName returns the descendant elements carrying every one
// of the space-separated class names, in document order.
func (e *Element) GetElementsByClassName(classNames string) []*Element {
	return collectByClassName(e.AsNode(), classNames)
}

// Tree search stays deliberately small: tag, id, and class lookups cover
// everything widget scanning needs.

func collectByTagName(root *Node, name string) []*Element {
	name = strings.ToLower(name)
	var result []*Element
	root.Walk(func(n *Node) bool {
		if n == root {
			return true
		}
		if el := n.AsElement(); el != nil {
			if name == "*" || el.LocalName() == name {
				result = append(result, el)
			}
		}
		return true
	})
	return result
}

func collectByClassName(root *Node, classNames string) []*Element {
	names := strings.Fields(classNames)
	if len(names) == 0 {
		return nil
	}
	var result []*Element
	root.Walk(func(n *Node) bool {
		if n == root {
			return true
		}
		el := n.AsElement()
		if el == nil {
			return true
		}
		list := el.ClassList()
		for _, name := range names {
			if !list.Contains(name) {
				return true
			}
		}
		result = append(result, el)
		return true
	})
	return result
}

// normalizeAttributeName lowercases attribute names, matching HTML document
// behavior.
func normalizeAttributeName(name string) string {
	return strings.ToLower(name)
}

// isValidAttributeName checks the name against the XML-name production subset
// that HTML attributes use in practice.
func isValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
