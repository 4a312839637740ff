package delegate

import (
	"github.com/chrisuehlinger/delegate/dom"
	"github.com/chrisuehlinger/delegate/emitter"
)

// Entry is one delegation scope: a container, an event type, the handlers
// registered for it and the armed not state.
type Entry struct {
	container *dom.Node
	eventType string // namespaced, e.g. "click.action-ns"
	listener  dom.ListenerID
	events    *dispatcher
	pending   *pendingTable
}

// Container returns the node the delegating listener is attached to.
func (entry *Entry) Container() *dom.Node {
	return entry.container
}

// EventType returns the namespaced event type of the listener.
func (entry *Entry) EventType() string {
	return entry.eventType
}

// Type returns the event type without its namespace.
func (entry *Entry) Type() string {
	typ, _ := dom.SplitEventType(entry.eventType)
	return typ
}

// HandlerCount returns the number of handlers registered for an aspect of
// a key, including internal ones.
func (entry *Entry) HandlerCount(aspect Aspect, key string) int {
	return entry.events.Count(eventName(aspect, key))
}

// Handlers returns the total number of handlers across all aspects and
// keys, including internal ones.
func (entry *Entry) Handlers() int {
	n := 0
	for _, name := range entry.events.Names() {
		n += entry.events.Count(name)
	}
	return n
}

// PendingKeys returns the keys whose not handlers are armed, in the order
// they were armed.
func (entry *Entry) PendingKeys() []string {
	return entry.pending.snapshot()
}

// PendingNode returns the node that armed key, if any.
func (entry *Entry) PendingNode(key string) (*dom.Node, bool) {
	return entry.pending.get(key)
}

// Delegator owns the table of delegation entries. At most one entry exists
// per (container, event type) pair.
type Delegator struct {
	settings
	doc     *dom.Document
	entries []*Entry
}

// New creates a Delegator whose default container is doc.
func New(doc *dom.Document, cfg Config) (*Delegator, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	return &Delegator{settings: s, doc: doc}, nil
}

// Attribute returns the delegation attribute in use.
func (d *Delegator) Attribute() string {
	return d.attribute
}

// Document returns the default container's document.
func (d *Delegator) Document() *dom.Document {
	return d.doc
}

// Register binds actions to the entry for (container, eventType), creating
// the entry and its listener on first use and merging into it afterwards.
// Prior bindings are never removed. A nil container selects the document
// and an empty eventType selects "click". It returns the container.
func (d *Delegator) Register(actions Actions, container *dom.Node, eventType string) *dom.Node {
	if container == nil {
		container = d.doc.AsNode()
	}
	if eventType == "" {
		eventType = DefaultEventType
	}
	namespaced := eventType + "." + d.namespace

	if entry := d.find(container, namespaced); entry != nil {
		n := entry.compile(actions)
		d.logger.Debugf("delegate: merged %d action(s) into %s on %s", n, namespaced, container.NodeName())
		return container
	}

	entry := &Entry{
		container: container,
		eventType: namespaced,
		events:    emitter.New[*dom.Node, *Event](),
		pending:   newPendingTable(),
	}
	n := entry.compile(actions)
	entry.listener = d.host.Attach(container, namespaced, func(e *dom.Event) {
		d.handle(entry, e)
	})
	d.entries = append(d.entries, entry)
	d.logger.Debugf("delegate: listening for %s on %s with %d action(s)", namespaced, container.NodeName(), n)
	return container
}

func (d *Delegator) find(container *dom.Node, eventType string) *Entry {
	for _, entry := range d.entries {
		if entry.container == container && entry.eventType == eventType {
			return entry
		}
	}
	return nil
}

// Entries returns the registered entries in creation order. The entries are
// live; the slice is not.
func (d *Delegator) Entries() []*Entry {
	return append([]*Entry(nil), d.entries...)
}

// Reset detaches every delegating listener this Delegator attached and
// forgets all entries. Listeners attached by other Delegators on the same
// nodes, even under the same namespace, are left in place.
func (d *Delegator) Reset() {
	for i := len(d.entries) - 1; i >= 0; i-- {
		entry := d.entries[i]
		d.host.Detach(entry.container, entry.listener)
	}
	d.logger.Debugf("delegate: reset %d entr(ies)", len(d.entries))
	d.entries = nil
}

// handle is the delegating listener body. Not aspects for stale keys fire
// before any aspect of the current keys. A panicking handler aborts the
// rest of the event.
func (d *Delegator) handle(entry *Entry, native *dom.Event) {
	actionNode, value := d.resolve(native.Target)
	if value == "" && entry.pending.len() == 0 {
		return
	}

	ctx := native.CurrentTarget
	e := &Event{Event: native}

	if entry.pending.len() > 0 {
		if n := entry.fireNot(ctx, e, actionNode); n > 0 {
			d.logger.Debugf("delegate: %s fired not for %d key(s)", native.Type, n)
		}
	}
	if value == "" {
		return
	}

	for _, key := range splitKeys(d.splitter, value) {
		d.logger.Debugf("delegate: %s dispatching %q", native.Type, key)
		entry.fireAspects(ctx, e, actionNode, key)
	}
}
