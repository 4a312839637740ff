package delegate

import (
	"sort"

	"github.com/chrisuehlinger/delegate/dom"
)

// Actions maps action keys to their handling. A value may be:
//
//   - a Handler, or a func(*dom.Node, *Event) Result: the is aspect
//   - a func(*Event) Result or func(*Event): the is aspect
//   - an Aspects or *Aspects value
//
// Values of any other type, and nil handlers, are ignored.
type Actions map[string]any

// Aspects declares handlers for individual aspects of one action key.
type Aspects struct {
	Before Handler
	Is     Handler
	After  Handler
	Not    Handler
	// Callback is used as Is when Is is nil.
	Callback Handler
}

// Func adapts a handler that does not need the container context.
func Func(f func(e *Event) Result) Handler {
	if f == nil {
		return nil
	}
	return func(_ *dom.Node, e *Event) Result {
		return f(e)
	}
}

// Do adapts a handler that returns nothing. It always passes.
func Do(f func(e *Event)) Handler {
	if f == nil {
		return nil
	}
	return func(_ *dom.Node, e *Event) Result {
		f(e)
		return Pass
	}
}

// normalize converts one Actions value into Aspects. ok is false for
// values that declare nothing usable.
func normalize(action any) (Aspects, bool) {
	var a Aspects
	switch v := action.(type) {
	case Handler:
		a.Is = v
	case func(*dom.Node, *Event) Result:
		a.Is = v
	case func(*Event) Result:
		a.Is = Func(v)
	case func(*Event):
		a.Is = Do(v)
	case Aspects:
		a = v
	case *Aspects:
		if v == nil {
			return Aspects{}, false
		}
		a = *v
	default:
		return Aspects{}, false
	}
	if a.Is == nil {
		a.Is = a.Callback
	}
	if a.Before == nil && a.Is == nil && a.After == nil && a.Not == nil {
		return Aspects{}, false
	}
	return a, true
}

// compile registers actions on the entry's dispatcher. Keys are compiled in
// sorted order; within a key, handlers are added before, is, after, not.
// A key with a not handler also gets an is observer, added after the
// caller's handlers, that arms the not state for the node that fired.
func (entry *Entry) compile(actions Actions) int {
	keys := make([]string, 0, len(actions))
	for key := range actions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	compiled := 0
	for _, key := range keys {
		a, ok := normalize(actions[key])
		if !ok {
			continue
		}
		entry.events.On(eventName(Before, key), a.Before)
		entry.events.On(eventName(Is, key), a.Is)
		entry.events.On(eventName(After, key), a.After)
		entry.events.On(eventName(Not, key), a.Not)

		if a.Not != nil {
			actionKey := key
			entry.events.On(eventName(Is, key), func(_ *dom.Node, e *Event) Result {
				entry.pending.set(actionKey, e.ActionNode)
				return Pass
			})
		}
		compiled++
	}
	return compiled
}
