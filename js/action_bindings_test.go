package js

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/dom"
)

// newActionRuntime sets up a runtime with document, action and an assert
// helper that throws on failure.
func newActionRuntime(t *testing.T) (*Runtime, *delegate.Delegator) {
	t.Helper()
	r := NewRuntime(nil)
	r.SetOutput(&bytes.Buffer{})

	doc := dom.NewDocument()
	d, err := delegate.New(doc, delegate.Config{})
	if err != nil {
		t.Fatalf("delegate.New failed: %v", err)
	}
	binder := NewDOMBinder(r)
	binder.BindDocument(doc)
	NewActionBinder(r, binder, d).Bind()

	mustExecute(t, r, `
		function assert(cond, msg) {
			if (!cond) { throw new Error("assertion failed: " + msg); }
		}
		var body = document.body;
		function span(action) {
			var el = document.createElement("span");
			el.setAttribute("data-action", action);
			body.appendChild(el);
			return el;
		}
	`)
	return r, d
}

func mustExecute(t *testing.T, r *Runtime, code string) {
	t.Helper()
	if _, err := r.Execute(code); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestActionClick(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		action.listen({
			alert: function (e) {
				assert(this === document, "this is the container");
				assert(e.actionNode === elem, "actionNode");
				assert(e.actionKey === "alert", "actionKey");
				assert(e.actionAspect === "is", "actionAspect");
				assert(e.target === elem, "target");
				count++;
			}
		});

		elem.trigger("mousedown");
		assert(count === 0, "mousedown ignored");

		elem.trigger("click");
		assert(count === 1, "click handled");
	`)
}

func TestActionDblclick(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		action.listen({ alert: function () { count++; } }, null, "dblclick");

		elem.trigger("click");
		assert(count === 0, "click ignored");
		elem.trigger("dblclick");
		assert(count === 1, "dblclick handled");
	`)
}

func TestActionHover(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		action.listen({ alert: function () { count++; } }, undefined, "mouseover");

		elem.trigger("click");
		assert(count === 0, "click ignored");
		elem.trigger("mouseover");
		elem.trigger("mouseover");
		assert(count === 2, "mouseover handled twice");
	`)
}

func TestActionMultipleKeys(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert confirm");
		var seen = [];
		action.listen({
			alert: function (e) { seen.push(e.actionKey); },
			confirm: function (e) { seen.push(e.actionKey); }
		});
		elem.trigger("click");
		assert(seen.join(",") === "alert,confirm", "order " + seen.join(","));
	`)
}

func TestActionBindTwice(t *testing.T) {
	r, d := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		function inc() { count++; }

		action.listen({ alert: inc });
		action.listen({ alert: inc });
		assert(action.cache().length === 1, "one entry");

		action.listen({ confirm: inc });
		assert(action.cache().length === 1, "still one entry");

		var elem2 = span("confirm");
		elem.trigger("click");
		assert(count === 2, "alert bound twice");

		elem2.trigger("click");
		assert(count === 3, "confirm bound once");

		action.listen({ confirm: inc });
		elem2.trigger("click");
		assert(count === 5, "confirm bound twice");
		elem2.remove();
	`)
	if len(d.Entries()) != 1 {
		t.Errorf("Entries = %d, want 1", len(d.Entries()))
	}
}

func TestActionBeforeAndAfter(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var aspects = [];
		function rec(e) { aspects.push(e.actionAspect); }
		action.listen({ alert: { before: rec, is: rec, after: rec } });

		elem.trigger("click");
		elem.trigger("click");
		assert(aspects.join(",") === "before,is,after,before,is,after", aspects.join(","));
	`)
}

func TestActionBeforeReturnsFalse(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("guarded open");
		var calls = [];
		action.listen({
			guarded: {
				before: function () { return false; },
				is: function () { calls.push("guarded"); }
			},
			open: {
				before: function () { return 0; },
				callback: function () { calls.push("open"); }
			}
		});
		elem.trigger("click");
		assert(calls.join(",") === "open", calls.join(","));
	`)
}

func TestActionNotInsideAndOutside(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		action.listen({
			alert: {
				is: function () { count++; },
				not: function (e) {
					assert(e.actionNode === elem, "not reports the armed node");
					count--;
				}
			}
		});

		body.trigger("click");
		assert(count === 0, "never clicked inside");

		elem.trigger("click");
		elem.trigger("click");
		assert(count === 2, "inside clicks do not fire not");

		body.trigger("click");
		assert(count === 1, "first outside click fires not");

		body.trigger("click");
		assert(count === 1, "second outside click does not");
	`)
}

func TestActionNotReturnsFalse(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		action.listen({
			alert: {
				is: function () { count++; },
				not: function () { count--; return false; }
			}
		});

		elem.trigger("click");
		assert(count === 1, "inside");
		body.trigger("click");
		assert(count === 0, "first outside");
		body.trigger("click");
		assert(count === -1, "second outside");
	`)
}

func TestActionEmpty(t *testing.T) {
	r, d := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("alert");
		var count = 0;
		action.listen({ alert: function () { count++; } });

		elem.trigger("click");
		assert(count === 1, "before empty");
		assert(action.cache().length === 1, "cache before empty");
		assert(action.cache()[0].eventType === "click.action-ns", "namespaced type");
		assert(action.cache()[0].node === document, "default container");

		action.empty();
		elem.trigger("click");
		assert(count === 1, "after empty");
		assert(action.cache().length === 0, "cache after empty");
	`)
	if len(d.Entries()) != 0 {
		t.Error("delegator still has entries")
	}
}

func TestActionCustomContainer(t *testing.T) {
	r, d := newActionRuntime(t)
	mustExecute(t, r, `
		var list = document.createElement("ul");
		list.innerHTML = '<li data-action="pick"><b id="label">one</b></li>';
		body.appendChild(list);
		var li = document.getElementById("label").parentNode;

		var picked = null;
		var ret = action.listen({
			pick: function (e) {
				assert(this === list, "this is the list");
				picked = e.actionNode;
			}
		}, list);
		assert(ret === list, "listen returns the container");

		document.getElementById("label").trigger("click");
		assert(picked === li, "actionNode is the li");

		picked = null;
		span("pick").trigger("click");
		assert(picked === null, "clicks outside the container are not delegated");
	`)
	if got := d.Entries()[0].Container().NodeName(); got != "UL" {
		t.Errorf("container = %s, want UL", got)
	}
}

func TestActionHandlerExceptionPropagates(t *testing.T) {
	r, _ := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("boom");
		action.listen({ boom: function () { throw new Error("kaboom"); } });
		var caught = null;
		try {
			elem.trigger("click");
		} catch (err) {
			caught = err.message;
		}
		assert(caught === "kaboom", "exception reached the caller: " + caught);
	`)

	_, err := r.Execute(`elem.trigger("click")`)
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("expected kaboom error, got %v", err)
	}
	if len(r.Errors()) == 0 {
		t.Error("error not recorded")
	}
}

func TestActionIgnoresNonFunctions(t *testing.T) {
	r, d := newActionRuntime(t)
	mustExecute(t, r, `
		var elem = span("a b");
		var count = 0;
		action.listen({ a: 42, b: { is: "nope", after: function () { count++; } } });
		elem.trigger("click");
		assert(count === 1, "after ran");
	`)
	if got := d.Entries()[0].HandlerCount(delegate.Is, "a"); got != 0 {
		t.Errorf("HandlerCount(is:a) = %d", got)
	}
}

func TestActionDefaultEventType(t *testing.T) {
	r := NewRuntime(nil)
	r.SetOutput(&bytes.Buffer{})
	doc := dom.NewDocument()
	d, err := delegate.New(doc, delegate.Config{})
	if err != nil {
		t.Fatalf("delegate.New failed: %v", err)
	}
	binder := NewDOMBinder(r)
	binder.BindDocument(doc)
	ab := NewActionBinder(r, binder, d)
	ab.SetDefaultEventType("mouseover")
	ab.Bind()

	mustExecute(t, r, `
		var el = document.createElement("span");
		el.setAttribute("data-action", "hover");
		document.body.appendChild(el);
		var count = 0;
		action.listen({ hover: function () { count++; } });
		el.trigger("click");
		el.trigger("mouseover");
		if (count !== 1) { throw new Error("count " + count); }
		if (action.cache()[0].eventType !== "mouseover.action-ns") { throw new Error(action.cache()[0].eventType); }
	`)
}

func TestActionNestedDispatchKeepsEventView(t *testing.T) {
	r := NewRuntime(nil)
	r.SetOutput(&bytes.Buffer{})
	doc := dom.NewDocument()
	d, err := delegate.New(doc, delegate.Config{})
	if err != nil {
		t.Fatalf("delegate.New failed: %v", err)
	}
	binder := NewDOMBinder(r)
	binder.BindDocument(doc)
	ab := NewActionBinder(r, binder, d)
	ab.Bind()

	mustExecute(t, r, `
		function span(action) {
			var el = document.createElement("span");
			el.setAttribute("data-action", action);
			document.body.appendChild(el);
			return el;
		}
		var outer = span("outer");
		var inner = span("inner");
		var innerMark = "unset";
		var kept = null;
		action.listen({
			outer: {
				before: function (e) {
					e.mark = "kept";
					inner.trigger("click");
				},
				is: function (e) { kept = e.mark; }
			},
			inner: function (e) { innerMark = e.mark; }
		});
		outer.trigger("click");
		if (innerMark !== undefined) { throw new Error("inner saw outer's view: " + innerMark); }
		if (kept !== "kept") { throw new Error("outer view lost: " + kept); }
	`)

	mustExecute(t, r, `inner.trigger("click");`)
	if n := len(ab.views); n != 1 {
		t.Errorf("Expected finished views to be pruned, %d left", n)
	}
}
