package dom

import (
	"reflect"
	"testing"
)

func TestEventBubbles(t *testing.T) {
	doc := NewDocument()
	span := doc.CreateElement("span")
	doc.Body().AppendChild(span.AsNode())

	var path []string
	record := func(e *Event) {
		path = append(path, e.CurrentTarget.NodeName())
		if e.Target != span.AsNode() {
			t.Errorf("Target = %v, want span", e.Target)
		}
	}
	span.AsNode().AddEventListener("click", record)
	doc.Body().AsNode().AddEventListener("click", record)
	doc.AsNode().AddEventListener("click", record)

	span.Trigger("click")

	want := []string{"SPAN", "BODY", "#document"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestEventTypeFiltering(t *testing.T) {
	doc := NewDocument()
	count := 0
	doc.AsNode().AddEventListener("click", func(*Event) { count++ })

	doc.Body().Trigger("mousedown")
	if count != 0 {
		t.Errorf("mousedown reached click listener")
	}
	doc.Body().Trigger("click")
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestNonBubblingEvent(t *testing.T) {
	doc := NewDocument()
	count := 0
	doc.AsNode().AddEventListener("focus", func(*Event) { count++ })
	doc.Body().AsNode().DispatchEvent(NewEvent("focus", false, false))
	if count != 0 {
		t.Error("non-bubbling event reached the document")
	}
}

func TestStopPropagation(t *testing.T) {
	doc := NewDocument()
	body := doc.Body().AsNode()
	var calls []string
	body.AddEventListener("click", func(e *Event) {
		calls = append(calls, "first")
		e.StopPropagation()
	})
	body.AddEventListener("click", func(e *Event) { calls = append(calls, "second") })
	doc.AsNode().AddEventListener("click", func(e *Event) { calls = append(calls, "document") })

	body.Trigger("click")
	if !reflect.DeepEqual(calls, []string{"first", "second"}) {
		t.Errorf("calls = %v", calls)
	}

	calls = nil
	body.AddEventListener("keyup", func(e *Event) {
		calls = append(calls, "a")
		e.StopImmediatePropagation()
	})
	body.AddEventListener("keyup", func(e *Event) { calls = append(calls, "b") })
	body.Trigger("keyup")
	if !reflect.DeepEqual(calls, []string{"a"}) {
		t.Errorf("calls = %v", calls)
	}
}

func TestPreventDefault(t *testing.T) {
	doc := NewDocument()
	doc.AsNode().AddEventListener("click", func(e *Event) { e.PreventDefault() })
	if doc.Body().Trigger("click") {
		t.Error("expected DispatchEvent to report prevented default")
	}

	e := NewEvent("click", true, false)
	doc.Body().AsNode().DispatchEvent(e)
	if e.DefaultPrevented {
		t.Error("non-cancelable event must not be prevented")
	}
	if e.CurrentTarget != nil || e.EventPhase != EventPhaseNone {
		t.Error("dispatch state not cleared")
	}
}

func TestNamespacedRemoval(t *testing.T) {
	doc := NewDocument()
	node := doc.AsNode()
	var calls []string
	node.AddEventListener("click.menu", func(*Event) { calls = append(calls, "menu-click") })
	node.AddEventListener("keyup.menu", func(*Event) { calls = append(calls, "menu-keyup") })
	node.AddEventListener("click", func(*Event) { calls = append(calls, "plain") })

	if !node.HasEventListeners("click.menu") || !node.HasEventListeners(".menu") {
		t.Error("HasEventListeners missed namespaced listener")
	}

	if n := node.RemoveEventListener("click.menu"); n != 1 {
		t.Errorf("removed %d, want 1", n)
	}
	node.Trigger("click")
	node.Trigger("keyup")
	if !reflect.DeepEqual(calls, []string{"plain", "menu-keyup"}) {
		t.Errorf("calls = %v", calls)
	}

	if n := node.RemoveEventListener(".menu"); n != 1 {
		t.Errorf("removed %d by namespace, want 1", n)
	}
	if node.HasEventListeners(".menu") {
		t.Error("namespace not cleared")
	}
	if n := node.RemoveEventListener(""); n != 0 {
		t.Errorf("empty type removed %d listeners", n)
	}
}

func TestRemoveByID(t *testing.T) {
	doc := NewDocument()
	count := 0
	id := doc.AsNode().AddEventListener("click", func(*Event) { count++ })
	if !doc.AsNode().RemoveEventListenerByID(id) {
		t.Fatal("RemoveEventListenerByID returned false")
	}
	if doc.AsNode().RemoveEventListenerByID(id) {
		t.Error("second removal should fail")
	}
	doc.Trigger("click")
	if count != 0 {
		t.Error("removed listener ran")
	}
	if doc.AsNode().AddEventListener("click", nil) != 0 {
		t.Error("nil listener should not register")
	}
}

func TestListenerAddedDuringDispatch(t *testing.T) {
	doc := NewDocument()
	node := doc.AsNode()
	count := 0
	node.AddEventListener("click", func(*Event) {
		node.AddEventListener("click", func(*Event) { count++ })
	})
	node.Trigger("click")
	if count != 0 {
		t.Error("listener added during dispatch ran in the same dispatch")
	}
}

func TestSplitEventType(t *testing.T) {
	cases := []struct{ in, typ, ns string }{
		{"click", "click", ""},
		{"click.action-ns", "click", "action-ns"},
		{".ns", "", "ns"},
	}
	for _, c := range cases {
		typ, ns := SplitEventType(c.in)
		if typ != c.typ || ns != c.ns {
			t.Errorf("SplitEventType(%q) = %q, %q", c.in, typ, ns)
		}
	}
}
