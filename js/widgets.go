package js

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/widgetkit/widget"
)

// setupWidgetAPI installs the global Widget namespace: create, getByNode,
// scan, and types.
func (r *Runtime) setupWidgetAPI() {
	vm := r.vm
	api := vm.NewObject()

	api.Set("create", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			r.throw(fmt.Errorf("Widget.create needs a type name"))
		}
		typeName := call.Arguments[0].String()
		t, ok := widget.LookupType(typeName)
		if !ok {
			r.throw(fmt.Errorf("no registered widget type %q", typeName))
		}

		var opts widget.Options
		if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) && !goja.IsNull(call.Arguments[1]) {
			obj := call.Arguments[1].ToObject(vm)
			if obj != nil {
				if v := obj.Get("node"); v != nil {
					opts.SrcNode = goElement(v)
				}
				if v := obj.Get("properties"); v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
					if propsObj := v.ToObject(vm); propsObj != nil {
						props := make(map[string]any)
						for _, key := range propsObj.Keys() {
							props[key] = propsObj.Get(key).Export()
						}
						opts.Properties = props
					}
				}
			}
		}

		w, err := widget.New(t, opts)
		if err != nil {
			r.throw(err)
		}
		return r.bindWidget(w)
	})

	api.Set("getByNode", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		w := widget.GetByNode(goNode(call.Arguments[0]))
		if w == nil {
			return goja.Null()
		}
		return r.bindWidget(w)
	})

	api.Set("scan", func(call goja.FunctionCall) goja.Value {
		return r.bindScanIssues(widget.ScanDocument(r.doc))
	})

	api.Set("types", func(call goja.FunctionCall) goja.Value {
		types := widget.RegisteredTypes()
		names := make([]interface{}, len(types))
		for i, t := range types {
			names[i] = t.Name
		}
		return vm.NewArray(names...)
	})

	vm.Set("Widget", api)
}

// bindWidget returns the JS wrapper for a widget instance, one per
// instance.
func (r *Runtime) bindWidget(w *widget.Widget) *goja.Object {
	if obj, ok := r.widgets[w]; ok {
		return obj
	}
	vm := r.vm

	obj := vm.NewObject()
	r.widgets[w] = obj
	obj.Set("id", w.ID())
	obj.Set("type", w.Type().Name)

	obj.DefineAccessorProperty("node", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		node := w.Node()
		if node == nil {
			return goja.Null()
		}
		return r.binder.bindNode(node.AsNode())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("destroyed", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(w.Destroyed())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("get", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		value, ok := w.Get(call.Arguments[0].String())
		if !ok {
			return goja.Undefined()
		}
		return vm.ToValue(value)
	})

	obj.Set("set", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		if err := w.Set(call.Arguments[0].String(), call.Arguments[1].Export()); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("setAll", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		propsObj := call.Arguments[0].ToObject(vm)
		if propsObj == nil {
			return goja.Undefined()
		}
		props := make(map[string]any)
		for _, key := range propsObj.Keys() {
			props[key] = propsObj.Get(key).Export()
		}
		if err := w.SetAll(props); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("properties", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(w.Properties())
	})

	obj.Set("on", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		eventType := call.Arguments[0].String()
		callback, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		sub := w.On(eventType, func(e *widget.Event) {
			r.call(callback, goja.Undefined(), r.bindWidgetEvent(e))
		})
		subObj := vm.NewObject()
		subObj.Set("detach", func(call goja.FunctionCall) goja.Value {
			sub.Detach()
			return goja.Undefined()
		})
		return subObj
	})

	obj.Set("enable", func(call goja.FunctionCall) goja.Value {
		if err := w.Enable(); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("disable", func(call goja.FunctionCall) goja.Value {
		if err := w.Disable(); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("renderTo", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			r.throw(fmt.Errorf("renderTo needs an element"))
		}
		container := goElement(call.Arguments[0])
		if container == nil {
			r.throw(fmt.Errorf("renderTo needs an element"))
		}
		if err := w.RenderTo(container); err != nil {
			r.throw(err)
		}
		return goja.Undefined()
	})

	obj.Set("destroy", func(call goja.FunctionCall) goja.Value {
		w.Destroy()
		return goja.Undefined()
	})

	return obj
}

// bindWidgetEvent shapes a widget event for script handlers.
func (r *Runtime) bindWidgetEvent(e *widget.Event) *goja.Object {
	vm := r.vm
	obj := vm.NewObject()
	obj.Set("type", e.Type)
	obj.Set("widget", r.bindWidget(e.Widget))

	if e.Change != nil {
		change := vm.NewObject()
		change.Set("name", e.Change.Name)
		change.Set("oldValue", vm.ToValue(e.Change.Old))
		change.Set("newValue", vm.ToValue(e.Change.New))
		obj.Set("change", change)
	} else {
		obj.Set("change", goja.Null())
	}

	if e.DOMEvent != nil {
		obj.Set("domEvent", r.binder.bindEvent(e.DOMEvent))
	} else {
		obj.Set("domEvent", goja.Null())
	}
	return obj
}

// bindScanIssues shapes scanner issues for script callers.
func (r *Runtime) bindScanIssues(issues []widget.ScanIssue) *goja.Object {
	vm := r.vm
	items := make([]interface{}, len(issues))
	for i, issue := range issues {
		obj := vm.NewObject()
		obj.Set("type", issue.TypeName)
		obj.Set("message", issue.Err.Error())
		if issue.Node != nil {
			obj.Set("node", r.binder.bindNode(issue.Node.AsNode()))
		} else {
			obj.Set("node", goja.Null())
		}
		items[i] = obj
	}
	return vm.NewArray(items...)
}
