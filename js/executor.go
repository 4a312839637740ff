package js

import (
	"fmt"
	"strings"

	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/dom"
)

// ScriptLoader returns the source of an external script referenced by a
// <script src="..."> element.
type ScriptLoader func(src string) (string, error)

// ScriptExecutor handles executing the scripts of an HTML document with the
// document and action globals installed.
type ScriptExecutor struct {
	runtime         *Runtime
	domBinder       *DOMBinder
	actionBinder    *ActionBinder
	delegator       *delegate.Delegator
	loader          ScriptLoader
	currentDocument *dom.Document
}

// NewScriptExecutor creates a new script executor that exposes d to scripts.
func NewScriptExecutor(runtime *Runtime, d *delegate.Delegator) *ScriptExecutor {
	domBinder := NewDOMBinder(runtime)
	return &ScriptExecutor{
		runtime:      runtime,
		domBinder:    domBinder,
		actionBinder: NewActionBinder(runtime, domBinder, d),
		delegator:    d,
	}
}

// Runtime returns the JavaScript runtime.
func (se *ScriptExecutor) Runtime() *Runtime {
	return se.runtime
}

// DOMBinder returns the DOM binder.
func (se *ScriptExecutor) DOMBinder() *DOMBinder {
	return se.domBinder
}

// ActionBinder returns the binder behind the "action" global.
func (se *ScriptExecutor) ActionBinder() *ActionBinder {
	return se.actionBinder
}

// Delegator returns the delegation engine bound to "action".
func (se *ScriptExecutor) Delegator() *delegate.Delegator {
	return se.delegator
}

// SetScriptLoader sets the loader for external scripts. Without one,
// <script src> elements are skipped.
func (se *ScriptExecutor) SetScriptLoader(loader ScriptLoader) {
	se.loader = loader
}

// SetupDocument installs the document and action globals for doc.
func (se *ScriptExecutor) SetupDocument(doc *dom.Document) {
	se.currentDocument = doc
	se.domBinder.BindDocument(doc)
	se.actionBinder.Bind()
}

// ExecuteScripts executes every script element of doc in tree order and
// returns the errors of the scripts that failed. A failing script does not
// stop the ones after it.
func (se *ScriptExecutor) ExecuteScripts(doc *dom.Document) []error {
	var errors []error
	for i, script := range doc.GetElementsByTagName("script") {
		if err := se.executeScript(script, i); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

// executeScript executes a single script element.
func (se *ScriptExecutor) executeScript(script *dom.Element, index int) error {
	scriptType := strings.ToLower(script.TrimmedAttribute("type"))
	if scriptType != "" && scriptType != "text/javascript" && scriptType != "application/javascript" {
		return nil
	}

	if src := script.TrimmedAttribute("src"); src != "" {
		if se.loader == nil {
			return nil
		}
		content, err := se.loader(src)
		if err != nil {
			return fmt.Errorf("loading script %s: %w", src, err)
		}
		return se.ExecuteExternalScript(content, src)
	}

	code := strings.TrimSpace(script.TextContent())
	if code == "" {
		return nil
	}

	name := script.Id()
	if name == "" {
		name = fmt.Sprintf("inline#%d", index)
	}
	return se.runtime.ExecuteScript(code, name)
}

// ExecuteExternalScript executes an external script with the given content.
// The name is used for error reporting.
func (se *ScriptExecutor) ExecuteExternalScript(content, name string) error {
	code := strings.TrimSpace(content)
	if code == "" {
		return nil
	}
	return se.runtime.ExecuteScript(code, name)
}

// DispatchDOMContentLoaded dispatches DOMContentLoaded on the document.
func (se *ScriptExecutor) DispatchDOMContentLoaded() error {
	return se.dispatch("DOMContentLoaded")
}

// DispatchLoadEvent dispatches load on the document.
func (se *ScriptExecutor) DispatchLoadEvent() error {
	return se.dispatch("load")
}

func (se *ScriptExecutor) dispatch(eventType string) error {
	if se.currentDocument == nil {
		return nil
	}
	return se.Fire(se.currentDocument.AsNode(), eventType)
}

// Fire triggers a synthetic event on node. A panic or exception escaping a
// listener is recorded as a script error and returned.
func (se *ScriptExecutor) Fire(node *dom.Node, eventType string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s listener failed: %v", eventType, p)
			se.runtime.mu.Lock()
			se.runtime.recordError(err)
			se.runtime.mu.Unlock()
		}
	}()
	node.Trigger(eventType)
	return nil
}
