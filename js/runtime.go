// Package js exposes the delegation engine to page scripts. It uses the
// goja JavaScript engine (pure Go ES5.1+ implementation).
package js

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/delegate/internal/log"
)

// Runtime wraps a goja JavaScript runtime with a console and error
// collection.
type Runtime struct {
	vm      *goja.Runtime
	console *goja.Object
	out     io.Writer
	logger  *log.Logger
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a new JavaScript runtime. Console output goes to
// stdout and script errors are reported to logger, which may be nil.
func NewRuntime(logger *log.Logger) *Runtime {
	r := &Runtime{
		vm:     goja.New(),
		out:    os.Stdout,
		logger: logger,
		errors: make([]error, 0),
	}
	r.setupConsole()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetOutput redirects console output.
func (r *Runtime) SetOutput(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = w
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Go panics escaping a handler surface here as script errors.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs a script read from src. Scripts are
// compiled in non-strict mode; scripts that need strict mode should include
// the "use strict" directive.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}

	_, err = r.vm.RunProgram(program)
	if err != nil {
		r.recordError(err)
	}
	return err
}

// recordError stores err and notifies the error callback. Callers hold r.mu.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Errorf("script: %v", err)
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// throw raises err inside the running script. JavaScript exceptions are
// rethrown with their original value.
func (r *Runtime) throw(err error) {
	if ex, ok := err.(*goja.Exception); ok {
		panic(ex.Value())
	}
	panic(r.vm.NewGoError(err))
}

// setupConsole creates the console object with log, warn, error, etc.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	printer := func(prefix string, logf func(string, ...interface{})) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := formatArgs(call.Arguments)
			if prefix != "" {
				fmt.Fprintln(r.out, prefix, args)
			} else {
				fmt.Fprintln(r.out, args)
			}
			logf("console: %s", args)
			return goja.Undefined()
		}
	}

	console.Set("log", printer("", r.logger.Debugf))
	console.Set("info", printer("[INFO]", r.logger.Debugf))
	console.Set("debug", printer("[DEBUG]", r.logger.Debugf))
	console.Set("warn", printer("[WARN]", r.logger.Warnf))
	console.Set("error", printer("[ERROR]", r.logger.Errorf))

	counts := make(map[string]int)
	console.Set("count", func(call goja.FunctionCall) goja.Value {
		label := "default"
		if len(call.Arguments) > 0 {
			label = call.Arguments[0].String()
		}
		counts[label]++
		fmt.Fprintf(r.out, "%s: %d\n", label, counts[label])
		return goja.Undefined()
	})

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			args := "Assertion failed"
			if len(call.Arguments) > 1 {
				args = formatArgs(call.Arguments[1:])
			}
			fmt.Fprintln(r.out, "[ASSERT]", args)
		}
		return goja.Undefined()
	})

	r.console = console
	r.vm.Set("console", console)
}

// formatArgs formats console arguments for output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
