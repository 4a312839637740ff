package delegate

import (
	"github.com/chrisuehlinger/delegate/dom"
)

// fireAspects runs before, is and after for one action key. A veto from
// before stops the key; the results of is and after are ignored. It
// reports whether is ran.
func (entry *Entry) fireAspects(ctx *dom.Node, e *Event, actionNode *dom.Node, key string) bool {
	e.ActionNode = actionNode
	e.ActionKey = key
	e.ActionAspect = Before
	if entry.events.Trigger(e.eventName(), ctx, e) == Veto {
		return false
	}

	e.ActionAspect = Is
	entry.events.Trigger(e.eventName(), ctx, e)

	e.ActionAspect = After
	entry.events.Trigger(e.eventName(), ctx, e)
	return true
}
