// Package loop provides a two-tier task queue modeled on the browser event
// loop: microtasks drain completely before each macrotask. Widget state
// reconciliation and script callbacks both schedule through it so their
// relative ordering is deterministic.
package loop

import "sync"

// Loop is a micro/macrotask queue. Queueing is safe from any goroutine; tasks
// themselves run on whichever goroutine calls RunOnce or Flush.
type Loop struct {
	mu         sync.Mutex
	microtasks []func()
	macrotasks []func()
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{}
}

// QueueMicrotask adds a task to the microtask queue. Microtasks run before
// the next macrotask.
func (l *Loop) QueueMicrotask(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.microtasks = append(l.microtasks, fn)
}

// QueueTask adds a task to the macrotask queue.
func (l *Loop) QueueTask(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.macrotasks = append(l.macrotasks, fn)
}

// RunOnce processes one iteration: it drains all microtasks, then runs one
// macrotask. It returns true if tasks remain afterwards.
func (l *Loop) RunOnce() bool {
	for {
		l.mu.Lock()
		if len(l.microtasks) == 0 {
			l.mu.Unlock()
			break
		}
		fn := l.microtasks[0]
		l.microtasks = l.microtasks[1:]
		l.mu.Unlock()

		fn()
	}

	l.mu.Lock()
	if len(l.macrotasks) > 0 {
		fn := l.macrotasks[0]
		l.macrotasks = l.macrotasks[1:]
		l.mu.Unlock()

		fn()
		return true
	}
	l.mu.Unlock()

	return l.HasPending()
}

// Flush runs iterations until no tasks remain, including tasks queued by the
// tasks themselves.
func (l *Loop) Flush() {
	for l.HasPending() {
		l.RunOnce()
	}
}

// HasPending reports whether any task is queued.
func (l *Loop) HasPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.microtasks) > 0 || len(l.macrotasks) > 0
}

// Clear drops all pending tasks without running them.
func (l *Loop) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.microtasks = l.microtasks[:0]
	l.macrotasks = l.macrotasks[:0]
}
