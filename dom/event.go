package dom

import (
	"time"
)

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone     EventPhase = 0
	EventPhaseAtTarget EventPhase = 2
	EventPhaseBubbling EventPhase = 3
)

// Event represents a DOM event travelling through the tree.
type Event struct {
	Type             string
	Target           *Node
	CurrentTarget    *Node
	EventPhase       EventPhase
	Bubbles          bool
	Cancelable       bool
	DefaultPrevented bool
	IsTrusted        bool
	TimeStamp        time.Time
	Detail           any

	propagationStopped bool
	immediateStopped   bool
}

// NewEvent creates an untrusted event ready for dispatch.
func NewEvent(eventType string, bubbles, cancelable bool) *Event {
	return &Event{
		Type:       eventType,
		Bubbles:    bubbles,
		Cancelable: cancelable,
		TimeStamp:  time.Now(),
	}
}

// PreventDefault marks a cancelable event as having its default action
// prevented.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.DefaultPrevented = true
	}
}

// StopPropagation prevents the event from reaching further ancestors.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation prevents any further listener from running,
// including those on the current node.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (e *Event) IsPropagationStopped() bool {
	return e.propagationStopped
}
