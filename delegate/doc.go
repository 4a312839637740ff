// Package delegate implements event delegation over a dom tree.
//
// A Delegator attaches one bubbling listener per (container, event type)
// pair. When an event reaches the container, the nearest ancestor of the
// event target carrying the delegation attribute (data-action by default)
// is the action node, and each whitespace-separated token of its value is
// an action key. For every key the handlers registered for it run in four
// aspects:
//
//	before  runs first; returning Veto skips is and after for that key
//	is      the action itself
//	after   runs once is has completed
//	not     runs when a later event resolves to a different action node
//	        than the one that last fired is for the key
//
// A not handler that returns Veto stays armed and fires again on the next
// outside interaction; any other result disarms it until is fires again.
//
// Usage:
//
//	doc := dom.NewDocument()
//	d, _ := delegate.New(doc, delegate.Config{})
//	d.Register(delegate.Actions{
//		"close": func(e *delegate.Event) { ... },
//		"menu": delegate.Aspects{
//			Is:  openMenu,
//			Not: closeMenu,
//		},
//	}, nil, "")
//
// A Delegator is not safe for concurrent use. All registration and dispatch
// must happen on the goroutine that dispatches events into the tree.
package delegate
