// Package js runs page scripts against a document with the widget engine
// exposed as a global API. It uses the goja JavaScript engine (pure Go
// ES5.1+ implementation).
package js

import (
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/widgetkit/dom"
	"github.com/chrisuehlinger/widgetkit/loop"
	"github.com/chrisuehlinger/widgetkit/widget"
)

// Runtime wraps a goja runtime bound to one document. The runtime owns the
// task scheduler: script turns, timer callbacks, and the widget engine's
// markup reconciles all interleave on its loop.
type Runtime struct {
	vm     *goja.Runtime
	doc    *dom.Document
	loop   *loop.Loop
	binder *domBinder

	consoleOut io.Writer
	errors     []error
	onError    func(error)

	widgets     map[*widget.Widget]*goja.Object
	timers      map[int]*timer
	nextTimerID int
	ready       bool
}

type timer struct {
	canceled bool
}

// NewRuntime creates a runtime over the document and installs its loop as
// the widget delivery scheduler.
func NewRuntime(doc *dom.Document) *Runtime {
	r := &Runtime{
		vm:         goja.New(),
		doc:        doc,
		loop:       loop.New(),
		consoleOut: os.Stdout,
		widgets:    make(map[*widget.Widget]*goja.Object),
		timers:     make(map[int]*timer),
	}
	widget.SetScheduler(r.loop)

	r.binder = newDOMBinder(r)
	r.setupConsole()
	r.setupTimers()
	r.setupGlobals()
	r.binder.setupEventConstructor()
	r.vm.Set("document", r.binder.bindNode(doc.AsNode()))
	r.setupWidgetAPI()

	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Document returns the bound document.
func (r *Runtime) Document() *dom.Document {
	return r.doc
}

// SetConsoleOutput redirects console output. The default is stdout.
func (r *Runtime) SetConsoleOutput(w io.Writer) {
	if w != nil {
		r.consoleOut = w
	}
}

// SetOnError sets a callback invoked for every recorded script error.
func (r *Runtime) SetOnError(handler func(error)) {
	r.onError = handler
}

// RunString executes a script and returns its completion value.
func (r *Runtime) RunString(code string) (result goja.Value, err error) {
	// The goja parser can panic on malformed input.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script panic: %v", p)
			r.noteError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.noteError(err)
	}
	return result, err
}

// RunScript executes a script compiled under the given source name, so
// stack traces point at the file.
func (r *Runtime) RunScript(src, code string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script panic in %s: %v", src, p)
			r.noteError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.noteError(err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.noteError(err)
	}
	return err
}

// DispatchReady declares the document ready: the declarative scanner runs
// over it once, then DOMContentLoaded fires. Later calls do nothing.
func (r *Runtime) DispatchReady() []widget.ScanIssue {
	if r.ready {
		return nil
	}
	r.ready = true
	issues := widget.ScanDocument(r.doc)
	r.doc.AsNode().DispatchEvent(dom.NewEvent("DOMContentLoaded", dom.EventInit{Bubbles: true}))
	return issues
}

// RunOnce runs one scheduler turn: pending microtasks, then one task.
// It reports whether work remains.
func (r *Runtime) RunOnce() bool {
	return r.loop.RunOnce()
}

// Drain runs scheduler turns until no work remains.
func (r *Runtime) Drain() {
	r.loop.Flush()
}

// HasPending reports whether the scheduler has queued work.
func (r *Runtime) HasPending() bool {
	return r.loop.HasPending()
}

// Errors returns the recorded script errors.
func (r *Runtime) Errors() []error {
	return append([]error{}, r.errors...)
}

// ClearErrors discards the recorded errors.
func (r *Runtime) ClearErrors() {
	r.errors = r.errors[:0]
}

func (r *Runtime) noteError(err error) {
	r.errors = append(r.errors, err)
	if r.onError != nil {
		r.onError(err)
	}
}

// throw raises err into the running script as a catchable exception.
func (r *Runtime) throw(err error) {
	panic(r.vm.NewGoError(err))
}

// call invokes a script callback, recording rather than propagating its
// errors so one bad handler cannot break the dispatching Go path.
func (r *Runtime) call(fn goja.Callable, this goja.Value, args ...goja.Value) {
	defer func() {
		if p := recover(); p != nil {
			r.noteError(fmt.Errorf("callback panic: %v", p))
		}
	}()
	if _, err := fn(this, args...); err != nil {
		r.noteError(err)
	}
}

// setupConsole creates the console object.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	level := func(prefix string) func(call goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			if prefix == "" {
				fmt.Fprintln(r.consoleOut, formatArgs(call.Arguments))
			} else {
				fmt.Fprintln(r.consoleOut, prefix, formatArgs(call.Arguments))
			}
			return goja.Undefined()
		}
	}

	console.Set("log", level(""))
	console.Set("info", level("[INFO]"))
	console.Set("debug", level("[DEBUG]"))
	console.Set("warn", level("[WARN]"))
	console.Set("error", level("[ERROR]"))

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg = formatArgs(call.Arguments[1:])
			}
			fmt.Fprintln(r.consoleOut, "[ASSERT]", msg)
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// setupTimers creates setTimeout, clearTimeout, and queueMicrotask. The
// scheduler is turn-based: a timeout runs on a later turn in queue order,
// not after a wall-clock delay.
func (r *Runtime) setupTimers() {
	r.vm.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			return goja.Undefined()
		}
		var args []goja.Value
		if len(call.Arguments) > 2 {
			args = call.Arguments[2:]
		}

		r.nextTimerID++
		id := r.nextTimerID
		t := &timer{}
		r.timers[id] = t
		r.loop.QueueTask(func() {
			if t.canceled {
				return
			}
			delete(r.timers, id)
			r.call(callback, goja.Undefined(), args...)
		})
		return r.vm.ToValue(id)
	})

	r.vm.Set("clearTimeout", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		id := int(call.Arguments[0].ToInteger())
		if t, ok := r.timers[id]; ok {
			t.canceled = true
			delete(r.timers, id)
		}
		return goja.Undefined()
	})

	r.vm.Set("queueMicrotask", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		callback, ok := goja.AssertFunction(call.Arguments[0])
		if !ok {
			return goja.Undefined()
		}
		r.loop.QueueMicrotask(func() {
			r.call(callback, goja.Undefined())
		})
		return goja.Undefined()
	})
}

// setupGlobals aliases the global object as window and self.
func (r *Runtime) setupGlobals() {
	window := r.vm.GlobalObject()
	r.vm.Set("window", window)
	r.vm.Set("self", window)
}

// formatArgs formats call arguments for console output.
func formatArgs(args []goja.Value) string {
	result := ""
	for i, arg := range args {
		if i > 0 {
			result += " "
		}
		result += formatValue(arg)
	}
	return result
}

func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
