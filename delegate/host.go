package delegate

import (
	"github.com/chrisuehlinger/delegate/dom"
)

// Host is the event subsystem a Delegator attaches to.
type Host interface {
	// Attach adds a bubbling listener for a namespaced event type and
	// returns its ID.
	Attach(node *dom.Node, eventType string, listener dom.EventListener) dom.ListenerID
	// Detach removes the listener returned by Attach. Other listeners on
	// node, including ones under the same namespaced type, are kept.
	Detach(node *dom.Node, id dom.ListenerID)
	// ClosestWithAttribute returns the nearest inclusive ancestor of node
	// carrying the attribute, or nil.
	ClosestWithAttribute(node *dom.Node, name string) *dom.Node
	// TrimmedAttribute returns the attribute value without surrounding
	// whitespace.
	TrimmedAttribute(node *dom.Node, name string) string
}

// DOMHost implements Host on top of the dom package.
type DOMHost struct{}

func (DOMHost) Attach(node *dom.Node, eventType string, listener dom.EventListener) dom.ListenerID {
	return node.AddEventListener(eventType, listener)
}

func (DOMHost) Detach(node *dom.Node, id dom.ListenerID) {
	node.RemoveEventListenerByID(id)
}

func (DOMHost) ClosestWithAttribute(node *dom.Node, name string) *dom.Node {
	if node == nil {
		return nil
	}
	if el := node.ClosestWithAttribute(name); el != nil {
		return el.AsNode()
	}
	return nil
}

func (DOMHost) TrimmedAttribute(node *dom.Node, name string) string {
	if el := node.AsElement(); el != nil {
		return el.TrimmedAttribute(name)
	}
	return ""
}
