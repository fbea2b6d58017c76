package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// bindEventTarget adds the EventTarget surface to a bound node. Listeners
// registered here run on the same dispatch path as Go listeners and widget
// event bridges.
func (b *domBinder) bindEventTarget(obj *goja.Object, node *dom.Node) {
	vm := b.r.vm

	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		eventType := call.Arguments[0].String()
		callback, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			return goja.Undefined()
		}
		opts := listenerOptions(vm, call.Arguments[2:])

		// Same function, type, and capture flag registers once.
		for _, l := range b.listeners {
			if l.node == node && l.typ == eventType && l.capture == opts.Capture && l.value.SameAs(call.Arguments[1]) {
				return goja.Undefined()
			}
		}

		handle := node.AddEventListener(eventType, func(e *dom.Event) {
			b.r.call(callback, goja.Undefined(), b.bindEvent(e))
		}, opts)
		b.listeners = append(b.listeners, &scriptListener{
			node:    node,
			typ:     eventType,
			value:   call.Arguments[1],
			capture: opts.Capture,
			handle:  handle,
		})
		return goja.Undefined()
	})

	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		eventType := call.Arguments[0].String()
		opts := listenerOptions(vm, call.Arguments[2:])
		for i, l := range b.listeners {
			if l.node == node && l.typ == eventType && l.capture == opts.Capture && l.value.SameAs(call.Arguments[1]) {
				l.handle.Remove()
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return goja.Undefined()
			}
		}
		return goja.Undefined()
	})

	obj.Set("dispatchEvent", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(true)
		}
		ev := goEvent(call.Arguments[0])
		if ev == nil {
			b.r.throw(dom.ErrSyntax("dispatchEvent needs an Event"))
		}
		return vm.ToValue(node.DispatchEvent(ev))
	})
}

// listenerOptions reads the third addEventListener argument: a boolean
// capture flag or an options object.
func listenerOptions(vm *goja.Runtime, rest []goja.Value) dom.ListenerOptions {
	var opts dom.ListenerOptions
	if len(rest) == 0 || rest[0] == nil || goja.IsUndefined(rest[0]) || goja.IsNull(rest[0]) {
		return opts
	}
	arg := rest[0]
	if arg.ExportType() != nil && arg.ExportType().Kind().String() == "bool" {
		opts.Capture = arg.ToBoolean()
		return opts
	}
	if obj := arg.ToObject(vm); obj != nil {
		if v := obj.Get("capture"); v != nil {
			opts.Capture = v.ToBoolean()
		}
		if v := obj.Get("once"); v != nil {
			opts.Once = v.ToBoolean()
		}
	}
	return opts
}

// bindEvent wraps a dom event for script handlers. Target and phase read
// live, so one wrapper stays accurate across dispatch phases.
func (b *domBinder) bindEvent(ev *dom.Event) *goja.Object {
	vm := b.r.vm
	obj := vm.NewObject()
	obj.Set("_goEvent", ev)
	obj.Set("type", ev.Type)
	obj.Set("bubbles", ev.Bubbles)
	obj.Set("cancelable", ev.Cancelable)

	obj.DefineAccessorProperty("target", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.bindNode(ev.Target())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("currentTarget", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.bindNode(ev.CurrentTarget())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("eventPhase", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(int(ev.EventPhase()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("defaultPrevented", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(ev.DefaultPrevented())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("preventDefault", func(call goja.FunctionCall) goja.Value {
		ev.PreventDefault()
		return goja.Undefined()
	})

	obj.Set("stopPropagation", func(call goja.FunctionCall) goja.Value {
		ev.StopPropagation()
		return goja.Undefined()
	})

	obj.Set("stopImmediatePropagation", func(call goja.FunctionCall) goja.Value {
		ev.StopImmediatePropagation()
		return goja.Undefined()
	})

	return obj
}

// goEvent recovers the dom event behind a script value, or nil.
func goEvent(v goja.Value) *dom.Event {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	slot := obj.Get("_goEvent")
	if slot == nil {
		return nil
	}
	ev, _ := slot.Export().(*dom.Event)
	return ev
}

// setupEventConstructor installs new Event(type, init) for scripts.
func (b *domBinder) setupEventConstructor() {
	vm := b.r.vm
	vm.Set("Event", func(call goja.ConstructorCall) *goja.Object {
		eventType := ""
		if len(call.Arguments) > 0 {
			eventType = call.Arguments[0].String()
		}
		var init dom.EventInit
		if len(call.Arguments) > 1 {
			if obj := call.Arguments[1].ToObject(vm); obj != nil {
				if v := obj.Get("bubbles"); v != nil {
					init.Bubbles = v.ToBoolean()
				}
				if v := obj.Get("cancelable"); v != nil {
					init.Cancelable = v.ToBoolean()
				}
			}
		}
		return b.bindEvent(dom.NewEvent(eventType, init))
	})
}
