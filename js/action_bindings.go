package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/dom"
)

// ActionBinder installs the global "action" object through which scripts
// declare delegated actions:
//
//	action.listen({
//	    save: function (e) { ... },
//	    menu: { is: open, not: function (e) { close(); return false; } }
//	}, node, 'click');
//	action.cache();  // [{node: ..., eventType: 'click.action-ns'}]
//	action.empty();
//
// Handlers are called with the container node as this. A handler that
// returns exactly false vetoes, like a Go handler returning delegate.Veto.
type ActionBinder struct {
	runtime   *Runtime
	binder    *DOMBinder
	delegator *delegate.Delegator

	// Event type used by listen when none is given. Empty selects the
	// delegator's default.
	defaultEventType string

	// JS views of delegated events whose native dispatch is still running.
	// Nested dispatches each get their own entry.
	views map[*delegate.Event]*goja.Object
}

// NewActionBinder creates an ActionBinder for d.
func NewActionBinder(runtime *Runtime, binder *DOMBinder, d *delegate.Delegator) *ActionBinder {
	return &ActionBinder{
		runtime:   runtime,
		binder:    binder,
		delegator: d,
		views:     make(map[*delegate.Event]*goja.Object),
	}
}

// SetDefaultEventType sets the event type listen uses when called without
// one.
func (ab *ActionBinder) SetDefaultEventType(eventType string) {
	ab.defaultEventType = eventType
}

// Bind installs the "action" global and returns it.
func (ab *ActionBinder) Bind() *goja.Object {
	vm := ab.runtime.vm
	action := vm.NewObject()

	action.Set("listen", func(call goja.FunctionCall) goja.Value {
		actions := ab.actionsFromValue(call.Argument(0))
		container := ab.binder.NodeFromValue(call.Argument(1))

		eventType := ab.defaultEventType
		if t := call.Argument(2); !goja.IsUndefined(t) && !goja.IsNull(t) {
			eventType = t.String()
		}
		return ab.binder.BindNode(ab.delegator.Register(actions, container, eventType))
	})

	action.Set("cache", func(call goja.FunctionCall) goja.Value {
		entries := ab.delegator.Entries()
		items := make([]interface{}, len(entries))
		for i, entry := range entries {
			item := vm.NewObject()
			item.Set("node", ab.binder.BindNode(entry.Container()))
			item.Set("eventType", entry.EventType())
			items[i] = item
		}
		return vm.NewArray(items...)
	})

	action.Set("empty", func(call goja.FunctionCall) goja.Value {
		ab.delegator.Reset()
		return goja.Undefined()
	})

	action.Set("attribute", ab.delegator.Attribute())

	vm.Set("action", action)
	return action
}

// actionsFromValue converts a JS action map. Keys whose value is neither a
// function nor an object are skipped, as are non-function aspect members.
func (ab *ActionBinder) actionsFromValue(v goja.Value) delegate.Actions {
	actions := delegate.Actions{}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return actions
	}
	obj := v.ToObject(ab.runtime.vm)
	for _, key := range obj.Keys() {
		val := obj.Get(key)
		if fn, ok := goja.AssertFunction(val); ok {
			actions[key] = ab.handler(fn)
			continue
		}
		member, ok := val.(*goja.Object)
		if !ok {
			continue
		}
		actions[key] = delegate.Aspects{
			Before:   ab.aspectHandler(member, "before"),
			Is:       ab.aspectHandler(member, "is"),
			After:    ab.aspectHandler(member, "after"),
			Not:      ab.aspectHandler(member, "not"),
			Callback: ab.aspectHandler(member, "callback"),
		}
	}
	return actions
}

func (ab *ActionBinder) aspectHandler(obj *goja.Object, name string) delegate.Handler {
	fn, ok := goja.AssertFunction(obj.Get(name))
	if !ok {
		return nil
	}
	return ab.handler(fn)
}

// handler wraps a JS function as a delegate.Handler. A thrown exception
// propagates out of the dispatch.
func (ab *ActionBinder) handler(fn goja.Callable) delegate.Handler {
	return func(ctx *dom.Node, e *delegate.Event) delegate.Result {
		ret, err := fn(ab.binder.BindNode(ctx), ab.eventObject(e))
		if err != nil {
			ab.runtime.throw(err)
		}
		if ret != nil && ret.StrictEquals(ab.runtime.vm.ToValue(false)) {
			return delegate.Veto
		}
		return delegate.Pass
	}
}

// eventObject returns the JS view of e with its action fields refreshed.
// The same object is returned for every aspect and key of one native event.
func (ab *ActionBinder) eventObject(e *delegate.Event) *goja.Object {
	obj, ok := ab.views[e]
	if !ok {
		ab.pruneViews()
		obj = ab.binder.eventObject(e.Event)
		ab.views[e] = obj
	}
	obj.Set("actionNode", ab.binder.nodeValue(e.ActionNode))
	obj.Set("actionKey", e.ActionKey)
	obj.Set("actionAspect", string(e.ActionAspect))
	return obj
}

// pruneViews drops the views of events whose dispatch has finished.
// DispatchEvent clears CurrentTarget on return, including on panic.
func (ab *ActionBinder) pruneViews() {
	for e := range ab.views {
		if e.CurrentTarget == nil {
			delete(ab.views, e)
		}
	}
}
