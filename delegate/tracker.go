package delegate

import (
	"github.com/chrisuehlinger/delegate/dom"
)

// pendingTable remembers, per action key, the node that last fired is for
// a key with a not handler. Keys keep the order in which they were armed.
type pendingTable struct {
	keys  []string
	nodes map[string]*dom.Node
}

func newPendingTable() *pendingTable {
	return &pendingTable{nodes: make(map[string]*dom.Node)}
}

func (p *pendingTable) set(key string, node *dom.Node) {
	if _, ok := p.nodes[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.nodes[key] = node
}

func (p *pendingTable) get(key string) (*dom.Node, bool) {
	node, ok := p.nodes[key]
	return node, ok
}

func (p *pendingTable) remove(key string) {
	if _, ok := p.nodes[key]; !ok {
		return
	}
	delete(p.nodes, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

func (p *pendingTable) len() int {
	return len(p.nodes)
}

// snapshot returns the armed keys in order.
func (p *pendingTable) snapshot() []string {
	return append([]string(nil), p.keys...)
}

// fireNot dispatches the not aspect for every armed key whose node is not
// actionNode. A key is disarmed unless its not handlers veto.
func (entry *Entry) fireNot(ctx *dom.Node, e *Event, actionNode *dom.Node) int {
	fired := 0
	for _, key := range entry.pending.snapshot() {
		recorded, ok := entry.pending.get(key)
		// A handler earlier in this loop may have disarmed the key.
		if !ok || recorded == actionNode {
			continue
		}
		e.ActionNode = recorded
		e.ActionKey = key
		e.ActionAspect = Not
		fired++
		if entry.events.Trigger(e.eventName(), ctx, e) != Veto {
			entry.pending.remove(key)
		}
	}
	return fired
}
