package js

import (
	"strings"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// domBinder projects dom nodes into the VM. Every node gets at most one JS
// object, cached both directions: the forward map here, and a _goNode slot
// on the object for the way back.
type domBinder struct {
	r         *Runtime
	nodes     map[*dom.Node]*goja.Object
	listeners []*scriptListener
}

// scriptListener records a script-registered DOM listener so
// removeEventListener can find it again by function identity.
type scriptListener struct {
	node    *dom.Node
	typ     string
	value   goja.Value
	capture bool
	handle  *dom.Listener
}

func newDOMBinder(r *Runtime) *domBinder {
	return &domBinder{
		r:     r,
		nodes: make(map[*dom.Node]*goja.Object),
	}
}

// bindNode returns the JS object for a node, creating it on first sight.
func (b *domBinder) bindNode(n *dom.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	if obj, ok := b.nodes[n]; ok {
		return obj
	}
	switch n.NodeType() {
	case dom.ElementNode:
		return b.bindElement(n.AsElement())
	case dom.DocumentNode:
		return b.bindDocument(n.AsDocument())
	default:
		return b.bindCharacterData(n)
	}
}

// goNode recovers the dom node behind a script value, or nil.
func goNode(v goja.Value) *dom.Node {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	slot := obj.Get("_goNode")
	if slot == nil {
		return nil
	}
	n, _ := slot.Export().(*dom.Node)
	return n
}

// goElement recovers the element behind a script value, or nil.
func goElement(v goja.Value) *dom.Element {
	n := goNode(v)
	if n == nil {
		return nil
	}
	return n.AsElement()
}

func (b *domBinder) bindElement(el *dom.Element) *goja.Object {
	vm := b.r.vm
	node := el.AsNode()

	obj := vm.NewObject()
	b.nodes[node] = obj
	obj.Set("_goNode", node)
	obj.Set("nodeType", int(dom.ElementNode))

	obj.DefineAccessorProperty("tagName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("localName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.LocalName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("id", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Id())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetId(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("className", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.ClassName())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			el.SetClassName(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("classList", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.bindTokenList(el.ClassList())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("textContent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.TextContent())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			node.SetTextContent(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("parentNode", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.bindNode(node.ParentNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("firstElementChild", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		child := el.FirstElementChild()
		if child == nil {
			return goja.Null()
		}
		return b.bindNode(child.AsNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("nextElementSibling", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		sib := el.NextElementSibling()
		if sib == nil {
			return goja.Null()
		}
		return b.bindNode(sib.AsNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("children", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.bindElements(el.Children())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		value, ok := el.GetAttribute(call.Arguments[0].String())
		if !ok {
			return goja.Null()
		}
		return vm.ToValue(value)
	})

	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		if err := el.SetAttributeWithError(call.Arguments[0].String(), call.Arguments[1].String()); err != nil {
			b.r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(false)
		}
		return vm.ToValue(el.HasAttribute(call.Arguments[0].String()))
	})

	obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		el.RemoveAttribute(call.Arguments[0].String())
		return goja.Undefined()
	})

	obj.Set("toggleAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(false)
		}
		name := call.Arguments[0].String()
		if len(call.Arguments) > 1 {
			return vm.ToValue(el.ToggleAttribute(name, call.Arguments[1].ToBoolean()))
		}
		return vm.ToValue(el.ToggleAttribute(name))
	})

	obj.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		child := goNode(call.Arguments[0])
		if child == nil {
			b.r.throw(dom.ErrHierarchyRequest("appendChild needs a node"))
		}
		if _, err := node.AppendChildWithError(child); err != nil {
			b.r.throw(err)
		}
		return call.Arguments[0]
	})

	obj.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		child := goNode(call.Arguments[0])
		if child == nil {
			b.r.throw(dom.ErrNotFound("removeChild needs a node"))
		}
		if _, err := node.RemoveChildWithError(child); err != nil {
			b.r.throw(err)
		}
		return call.Arguments[0]
	})

	obj.Set("remove", func(call goja.FunctionCall) goja.Value {
		if parent := node.ParentNode(); parent != nil {
			parent.RemoveChild(node)
		}
		return goja.Undefined()
	})

	obj.Set("contains", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(false)
		}
		return vm.ToValue(node.Contains(goNode(call.Arguments[0])))
	})

	b.bindEventTarget(obj, node)
	return obj
}

func (b *domBinder) bindDocument(doc *dom.Document) *goja.Object {
	vm := b.r.vm
	node := doc.AsNode()

	obj := vm.NewObject()
	b.nodes[node] = obj
	obj.Set("_goNode", node)
	obj.Set("nodeType", int(dom.DocumentNode))

	obj.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		root := doc.DocumentElement()
		if root == nil {
			return goja.Null()
		}
		return b.bindNode(root.AsNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		body := doc.Body()
		if body == nil {
			return goja.Null()
		}
		return b.bindNode(body.AsNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		el := doc.GetElementByID(call.Arguments[0].String())
		if el == nil {
			return goja.Null()
		}
		return b.bindNode(el.AsNode())
	})

	obj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		matches := b.selectAll(doc, call.Arguments[0].String())
		if len(matches) == 0 {
			return goja.Null()
		}
		return b.bindNode(matches[0].AsNode())
	})

	obj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return b.bindElements(nil)
		}
		return b.bindElements(b.selectAll(doc, call.Arguments[0].String()))
	})

	obj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			b.r.throw(dom.ErrInvalidCharacter("createElement needs a tag name"))
		}
		el, err := doc.CreateElementWithError(call.Arguments[0].String())
		if err != nil {
			b.r.throw(err)
		}
		return b.bindNode(el.AsNode())
	})

	obj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return b.bindNode(doc.CreateTextNode(text))
	})

	b.bindEventTarget(obj, node)
	return obj
}

func (b *domBinder) bindCharacterData(n *dom.Node) *goja.Object {
	vm := b.r.vm

	obj := vm.NewObject()
	b.nodes[n] = obj
	obj.Set("_goNode", n)
	obj.Set("nodeType", int(n.NodeType()))

	obj.DefineAccessorProperty("data", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(n.Data())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			n.SetData(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("textContent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(n.TextContent())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) > 0 {
			n.SetData(call.Arguments[0].String())
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("parentNode", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.bindNode(n.ParentNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	return obj
}

func (b *domBinder) bindTokenList(tl *dom.TokenList) *goja.Object {
	vm := b.r.vm
	obj := vm.NewObject()

	obj.DefineAccessorProperty("length", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(tl.Length())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("contains", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(false)
		}
		return vm.ToValue(tl.Contains(call.Arguments[0].String()))
	})

	obj.Set("add", func(call goja.FunctionCall) goja.Value {
		if err := tl.AddWithError(argStrings(call.Arguments)...); err != nil {
			b.r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("remove", func(call goja.FunctionCall) goja.Value {
		if err := tl.RemoveWithError(argStrings(call.Arguments)...); err != nil {
			b.r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("toggle", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(false)
		}
		name := call.Arguments[0].String()
		var result bool
		var err error
		if len(call.Arguments) > 1 {
			result, err = tl.ToggleWithError(name, call.Arguments[1].ToBoolean())
		} else {
			result, err = tl.ToggleWithError(name)
		}
		if err != nil {
			b.r.throw(err)
		}
		return vm.ToValue(result)
	})

	return obj
}

func (b *domBinder) bindElements(els []*dom.Element) *goja.Object {
	items := make([]interface{}, len(els))
	for i, el := range els {
		items[i] = b.bindNode(el.AsNode())
	}
	return b.r.vm.NewArray(items...)
}

// selectAll resolves the supported selector forms: #id, .class, and a bare
// tag name.
func (b *domBinder) selectAll(doc *dom.Document, selector string) []*dom.Element {
	selector = strings.TrimSpace(selector)
	switch {
	case selector == "":
		return nil
	case strings.HasPrefix(selector, "#"):
		el := doc.GetElementByID(selector[1:])
		if el == nil {
			return nil
		}
		return []*dom.Element{el}
	case strings.HasPrefix(selector, "."):
		return doc.GetElementsByClassName(selector[1:])
	default:
		return doc.GetElementsByTagName(selector)
	}
}

func argStrings(args []goja.Value) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg.String()
	}
	return out
}
