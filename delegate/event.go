package delegate

import (
	"github.com/chrisuehlinger/delegate/dom"
	"github.com/chrisuehlinger/delegate/emitter"
)

// Aspect is one phase of handling for an action key.
type Aspect string

const (
	Before Aspect = "before"
	Is     Aspect = "is"
	After  Aspect = "after"
	Not    Aspect = "not"
)

// Result is returned by handlers. Veto plays the role of an explicit false.
type Result = emitter.Result

const (
	Pass = emitter.Pass
	Veto = emitter.Veto
)

// Event is the delegated event handed to action handlers. One Event is
// shared by every dispatch made for a single native event: the action
// fields are rewritten before each aspect and each key.
type Event struct {
	*dom.Event

	// ActionNode is the element carrying the delegation attribute. For the
	// not aspect it is the node that last fired is for ActionKey.
	ActionNode *dom.Node
	ActionKey  string
	// ActionAspect is the aspect currently being dispatched.
	ActionAspect Aspect
}

// eventName is the emitter name for the event's current aspect and key.
func (e *Event) eventName() string {
	return eventName(e.ActionAspect, e.ActionKey)
}

func eventName(aspect Aspect, key string) string {
	return string(aspect) + ":" + key
}

// Handler is an action callback. ctx is the container node the delegating
// listener is attached to.
type Handler = emitter.Handler[*dom.Node, *Event]

// dispatcher maps "aspect:key" names to handlers.
type dispatcher = emitter.Emitter[*dom.Node, *Event]
