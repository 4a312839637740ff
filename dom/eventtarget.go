package dom

import (
	"strings"
	"sync/atomic"
)

// EventListener is a callback registered with Node.AddEventListener.
type EventListener func(e *Event)

// ListenerID identifies a registered listener. Go function values cannot be
// compared, so removal of a single listener goes through its ID.
type ListenerID uint64

var lastListenerID atomic.Uint64

type listenerEntry struct {
	id        ListenerID
	eventType string
	namespace string
	listener  EventListener
}

// SplitEventType splits a namespaced event type such as "click.menu" into
// its type ("click") and namespace ("menu"). Either part may be empty.
func SplitEventType(eventType string) (string, string) {
	if i := strings.IndexByte(eventType, '.'); i >= 0 {
		return eventType[:i], eventType[i+1:]
	}
	return eventType, ""
}

// AddEventListener registers a bubbling listener. eventType may carry a
// namespace suffix ("click.menu"); the namespace only matters for
// RemoveEventListener. Listeners run in registration order.
func (n *Node) AddEventListener(eventType string, listener EventListener) ListenerID {
	if listener == nil {
		return 0
	}
	typ, ns := SplitEventType(eventType)
	if typ == "" {
		return 0
	}
	id := ListenerID(lastListenerID.Add(1))
	n.listeners = append(n.listeners, listenerEntry{
		id:        id,
		eventType: typ,
		namespace: ns,
		listener:  listener,
	})
	return id
}

// RemoveEventListener removes every listener matching eventType, which may
// be a bare type ("click"), a namespaced type ("click.menu") or a namespace
// alone (".menu"). It returns the number of listeners removed.
func (n *Node) RemoveEventListener(eventType string) int {
	typ, ns := SplitEventType(eventType)
	if typ == "" && ns == "" {
		return 0
	}
	kept := n.listeners[:0]
	removed := 0
	for _, l := range n.listeners {
		if (typ == "" || l.eventType == typ) && (ns == "" || l.namespace == ns) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	// Clear the tail so dropped closures can be collected.
	for i := len(kept); i < len(n.listeners); i++ {
		n.listeners[i] = listenerEntry{}
	}
	n.listeners = kept
	return removed
}

// RemoveEventListenerByID removes a single listener. It returns false if no
// listener with that ID is registered on n.
func (n *Node) RemoveEventListenerByID(id ListenerID) bool {
	for i, l := range n.listeners {
		if l.id == id {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// HasEventListeners returns true if there are any listeners for eventType,
// which may be namespaced.
func (n *Node) HasEventListeners(eventType string) bool {
	typ, ns := SplitEventType(eventType)
	for _, l := range n.listeners {
		if (typ == "" || l.eventType == typ) && (ns == "" || l.namespace == ns) {
			return true
		}
	}
	return false
}

// DispatchEvent dispatches e at n. The event visits n and then, if it
// bubbles, each ancestor up to the root. Listeners run synchronously in
// registration order. Returns false if the default action was prevented.
//
// A panicking listener aborts dispatch and the panic propagates to the
// caller.
func (n *Node) DispatchEvent(e *Event) bool {
	e.Target = n
	e.propagationStopped = false
	e.immediateStopped = false
	defer func() {
		e.CurrentTarget = nil
		e.EventPhase = EventPhaseNone
	}()

	for cur := n; cur != nil; cur = cur.parentNode {
		if cur == n {
			e.EventPhase = EventPhaseAtTarget
		} else {
			e.EventPhase = EventPhaseBubbling
		}
		e.CurrentTarget = cur
		cur.invokeListeners(e)
		if e.propagationStopped || !e.Bubbles {
			break
		}
	}
	return !e.DefaultPrevented
}

// invokeListeners runs the listeners of n that match e.Type. The slice is
// copied first so listeners may add or remove listeners while running.
func (n *Node) invokeListeners(e *Event) {
	if len(n.listeners) == 0 {
		return
	}
	listeners := make([]listenerEntry, len(n.listeners))
	copy(listeners, n.listeners)
	for _, l := range listeners {
		if l.eventType != e.Type {
			continue
		}
		l.listener(e)
		if e.immediateStopped {
			return
		}
	}
}

// Trigger dispatches a bubbling, cancelable synthetic event of the given
// type at n.
func (n *Node) Trigger(eventType string) bool {
	return n.DispatchEvent(NewEvent(eventType, true, true))
}
