package js

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/dom"
)

func newTestExecutor(t *testing.T, page string) (*ScriptExecutor, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseHTMLString(page)
	if err != nil {
		t.Fatalf("ParseHTMLString failed: %v", err)
	}
	d, err := delegate.New(doc, delegate.Config{})
	if err != nil {
		t.Fatalf("delegate.New failed: %v", err)
	}
	r := NewRuntime(nil)
	r.SetOutput(&bytes.Buffer{})
	executor := NewScriptExecutor(r, d)
	executor.SetupDocument(doc)
	return executor, doc
}

func TestScriptExecutorBasic(t *testing.T) {
	executor, doc := newTestExecutor(t, `<!DOCTYPE html>
<html>
<head></head>
<body>
	<div id="test">Original</div>
	<script>
		document.getElementById('test').textContent = 'Modified';
	</script>
</body>
</html>`)

	if errs := executor.ExecuteScripts(doc); len(errs) > 0 {
		t.Fatalf("ExecuteScripts returned errors: %v", errs)
	}

	el := doc.GetElementById("test")
	if el == nil {
		t.Fatal("Element not found")
	}
	if el.TextContent() != "Modified" {
		t.Errorf("Expected 'Modified', got '%s'", el.TextContent())
	}
}

func TestScriptExecutorMultipleScripts(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body>
	<div id="test">0</div>
	<script>var counter = 1;</script>
	<script>counter += 2;</script>
	<script type="text/template">counter = 100;</script>
	<script>document.getElementById('test').textContent = counter;</script>
</body>`)

	if errs := executor.ExecuteScripts(doc); len(errs) > 0 {
		t.Fatalf("ExecuteScripts returned errors: %v", errs)
	}
	if got := doc.GetElementById("test").TextContent(); got != "3" {
		t.Errorf("Expected '3', got '%s'", got)
	}
}

func TestScriptExecutorContinuesAfterError(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body>
	<div id="test"></div>
	<script id="broken">throw new Error("broken");</script>
	<script>document.getElementById('test').textContent = 'ran';</script>
</body>`)

	errs := executor.ExecuteScripts(doc)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "broken") {
		t.Errorf("Expected error to mention the script, got %v", errs[0])
	}
	if got := doc.GetElementById("test").TextContent(); got != "ran" {
		t.Errorf("Expected later script to run, got '%s'", got)
	}
}

func TestScriptExecutorExternalScripts(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body>
	<script src="lib.js"></script>
	<script src="missing.js"></script>
	<script>var result = double(21);</script>
</body>`)

	executor.SetScriptLoader(func(src string) (string, error) {
		if src == "lib.js" {
			return "function double(x) { return x * 2; }", nil
		}
		return "", errors.New("not found")
	})

	errs := executor.ExecuteScripts(doc)
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "missing.js") {
		t.Fatalf("Expected one missing.js error, got %v", errs)
	}
	if got := executor.Runtime().VM().Get("result").ToInteger(); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
}

func TestScriptExecutorSkipsExternalWithoutLoader(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body><script src="lib.js"></script></body>`)
	if errs := executor.ExecuteScripts(doc); len(errs) > 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
}

func TestScriptExecutorDelegatedActions(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body>
	<button id="save" data-action="save"><b id="label">Save</b></button>
	<script>
		var saved = 0;
		action.listen({ save: function () { saved++; } });
	</script>
</body>`)

	if errs := executor.ExecuteScripts(doc); len(errs) > 0 {
		t.Fatalf("ExecuteScripts returned errors: %v", errs)
	}
	if n := len(executor.Delegator().Entries()); n != 1 {
		t.Fatalf("Expected 1 entry, got %d", n)
	}

	if err := executor.Fire(doc.GetElementById("label").AsNode(), "click"); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if got := executor.Runtime().VM().Get("saved").ToInteger(); got != 1 {
		t.Errorf("Expected 1 save, got %d", got)
	}
}

func TestScriptExecutorFireReportsHandlerErrors(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body>
	<span id="x" data-action="boom"></span>
	<script>
		action.listen({ boom: function () { throw new Error("kaboom"); } });
	</script>
</body>`)
	executor.ExecuteScripts(doc)

	err := executor.Fire(doc.GetElementById("x").AsNode(), "click")
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Fatalf("Expected kaboom error, got %v", err)
	}
	if n := len(executor.Runtime().Errors()); n != 1 {
		t.Errorf("Expected 1 recorded error, got %d", n)
	}
}

func TestScriptExecutorLoadEvents(t *testing.T) {
	executor, doc := newTestExecutor(t, `<body>
	<script>
		var order = [];
		document.addEventListener("DOMContentLoaded", function () { order.push("ready"); });
		document.addEventListener("load", function () { order.push("load"); });
	</script>
</body>`)
	executor.ExecuteScripts(doc)

	if err := executor.DispatchDOMContentLoaded(); err != nil {
		t.Fatal(err)
	}
	if err := executor.DispatchLoadEvent(); err != nil {
		t.Fatal(err)
	}
	if got := executor.Runtime().VM().Get("order").String(); got != "ready,load" {
		t.Errorf("Expected 'ready,load', got '%s'", got)
	}
}
