// Package emitter implements a synchronous named-event emitter. Handlers
// are stored per event name and invoked in registration order; the value a
// handler returns can veto the caller's next step.
//
// The invocation context is passed to Trigger instead of being bound when a
// handler is registered, so stored handlers are never mutated.
package emitter

import "sort"

// Result is the value a handler returns. The zero value, Pass, is the
// equivalent of returning nothing.
type Result int

const (
	// Pass lets the caller carry on.
	Pass Result = iota
	// Veto is an explicit "false": the aggregate result of the trigger
	// becomes Veto.
	Veto
)

// String returns "pass" or "veto".
func (r Result) String() string {
	if r == Veto {
		return "veto"
	}
	return "pass"
}

// Handler is a callback registered under an event name. ctx is the
// invocation context supplied to Trigger.
type Handler[C, E any] func(ctx C, e E) Result

// Emitter stores handlers by event name. The zero value is ready to use.
// An Emitter is not safe for concurrent use.
type Emitter[C, E any] struct {
	handlers map[string][]Handler[C, E]
}

// New creates an empty Emitter.
func New[C, E any]() *Emitter[C, E] {
	return &Emitter[C, E]{}
}

// On appends handler to the list for name. Nil handlers are ignored.
func (em *Emitter[C, E]) On(name string, handler Handler[C, E]) {
	if handler == nil {
		return
	}
	if em.handlers == nil {
		em.handlers = make(map[string][]Handler[C, E])
	}
	em.handlers[name] = append(em.handlers[name], handler)
}

// Off removes every handler registered under name.
func (em *Emitter[C, E]) Off(name string) {
	delete(em.handlers, name)
}

// Has reports whether any handler is registered under name.
func (em *Emitter[C, E]) Has(name string) bool {
	return len(em.handlers[name]) > 0
}

// Count returns the number of handlers registered under name.
func (em *Emitter[C, E]) Count(name string) int {
	return len(em.handlers[name])
}

// Names returns the event names that have handlers, sorted.
func (em *Emitter[C, E]) Names() []string {
	names := make([]string, 0, len(em.handlers))
	for name := range em.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trigger invokes every handler registered under name with ctx and e, in
// registration order. All handlers run even after one vetoes; the result is
// Veto if any handler returned Veto and Pass otherwise. Handlers added
// during the trigger are not invoked until the next one.
func (em *Emitter[C, E]) Trigger(name string, ctx C, e E) Result {
	list := em.handlers[name]
	if len(list) == 0 {
		return Pass
	}
	// Capture the length so appends made by handlers are not visited.
	list = list[:len(list):len(list)]

	result := Pass
	for _, h := range list {
		if h(ctx, e) == Veto {
			result = Veto
		}
	}
	return result
}
