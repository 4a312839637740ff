// Package page runs HTML pages and their scripts against the delegation
// engine and collects per-script results.
package page

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dop251/goja"
	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/delegate/config"
	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/dom"
	"github.com/chrisuehlinger/delegate/internal/log"
	"github.com/chrisuehlinger/delegate/js"
)

// Status is the outcome of a script or a page run.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ScriptResult is the outcome of one script.
type ScriptResult struct {
	Name    string `json:"name" yaml:"name"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// EntryResult describes a delegation entry left registered after the run.
type EntryResult struct {
	Container string `json:"container" yaml:"container"`
	EventType string `json:"eventType" yaml:"eventType"`
	Handlers  int    `json:"handlers" yaml:"handlers"`
}

// Result is the outcome of running a page.
type Result struct {
	Page     string         `json:"page" yaml:"page"`
	Status   Status         `json:"status" yaml:"status"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
	Scripts  []ScriptResult `json:"scripts" yaml:"scripts"`
	Entries  []EntryResult  `json:"entries" yaml:"entries"`
	Duration time.Duration  `json:"-" yaml:"-"`
	Millis   int64          `json:"duration" yaml:"duration"`
}

// Runner opens pages with a shared configuration.
type Runner struct {
	Config  *config.File
	Logger  *log.Logger
	Results []Result
}

// NewRunner creates a runner. A nil cfg selects config.Default.
func NewRunner(cfg *config.File, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runner{
		Config:  cfg,
		Logger:  logger,
		Results: make([]Result, 0),
	}
}

// Session is an opened page: its document, delegator and script runtime.
// External scripts referenced by the page resolve relative to the page's
// directory.
type Session struct {
	Path     string
	Document *dom.Document
	Executor *js.ScriptExecutor
	dir      string
}

// Open parses the page at pagePath and installs the document and action
// globals. No script runs yet.
func (r *Runner) Open(pagePath string) (*Session, error) {
	f, err := os.Open(pagePath)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	doc, err := dom.ParseHTML(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pagePath, err)
	}
	return r.OpenDocument(pagePath, doc)
}

// OpenDocument creates a session for an already parsed document. name is
// used in results and as the base for external scripts.
func (r *Runner) OpenDocument(name string, doc *dom.Document) (*Session, error) {
	d, err := delegate.New(doc, r.Config.DelegateConfig(r.Logger))
	if err != nil {
		return nil, err
	}

	runtime := js.NewRuntime(r.Logger)
	executor := js.NewScriptExecutor(runtime, d)
	executor.ActionBinder().SetDefaultEventType(r.Config.EventType)

	s := &Session{
		Path:     name,
		Document: doc,
		Executor: executor,
		dir:      filepath.Dir(name),
	}
	executor.SetScriptLoader(s.load)
	executor.SetupDocument(doc)
	return s, nil
}

func (s *Session) load(src string) (string, error) {
	if strings.Contains(src, "://") {
		return "", fmt.Errorf("remote scripts are not supported: %s", src)
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, src)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Runtime returns the session's JavaScript runtime.
func (s *Session) Runtime() *js.Runtime {
	return s.Executor.Runtime()
}

// Delegator returns the session's delegation engine.
func (s *Session) Delegator() *delegate.Delegator {
	return s.Executor.Delegator()
}

// Load runs the page's own scripts, then dispatches DOMContentLoaded and
// load on the document.
func (s *Session) Load() []ScriptResult {
	var results []ScriptResult
	for _, err := range s.Executor.ExecuteScripts(s.Document) {
		results = append(results, ScriptResult{Name: s.Path, Status: StatusFail, Message: err.Error()})
	}
	if err := s.Executor.DispatchDOMContentLoaded(); err != nil {
		results = append(results, ScriptResult{Name: "DOMContentLoaded", Status: StatusFail, Message: err.Error()})
	}
	if err := s.Executor.DispatchLoadEvent(); err != nil {
		results = append(results, ScriptResult{Name: "load", Status: StatusFail, Message: err.Error()})
	}
	return results
}

// RunFile executes the script file at path.
func (s *Session) RunFile(path string) ScriptResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScriptResult{Name: path, Status: StatusError, Message: err.Error()}
	}
	if err := s.Executor.ExecuteExternalScript(string(data), path); err != nil {
		return ScriptResult{Name: path, Status: StatusFail, Message: err.Error()}
	}
	return ScriptResult{Name: path, Status: StatusPass}
}

// Eval evaluates code and returns its value.
func (s *Session) Eval(code string) (goja.Value, error) {
	return s.Runtime().Execute(code)
}

// Fire triggers eventType on the element with the given id.
func (s *Session) Fire(id, eventType string) error {
	el := s.Document.GetElementById(id)
	if el == nil {
		return dom.ErrNotFound(fmt.Sprintf("no element with id %q", id))
	}
	return s.Executor.Fire(el.AsNode(), eventType)
}

// Entries summarizes the delegator's registered entries.
func (s *Session) Entries() []EntryResult {
	entries := s.Delegator().Entries()
	out := make([]EntryResult, len(entries))
	for i, entry := range entries {
		out[i] = EntryResult{
			Container: describeNode(entry.Container()),
			EventType: entry.EventType(),
			Handlers:  entry.Handlers(),
		}
	}
	return out
}

func describeNode(n *dom.Node) string {
	el := n.AsElement()
	if el == nil {
		return n.NodeName()
	}
	if id := el.Id(); id != "" {
		return el.LocalName() + "#" + id
	}
	return el.LocalName()
}

// Run opens pagePath, loads it and runs scripts in order. The result is
// also appended to r.Results.
func (r *Runner) Run(pagePath string, scripts []string) Result {
	start := time.Now()
	result := Result{
		Page:    pagePath,
		Scripts: make([]ScriptResult, 0),
		Entries: make([]EntryResult, 0),
	}

	s, err := r.Open(pagePath)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return r.finish(result, start)
	}

	result.Scripts = append(result.Scripts, s.Load()...)
	for _, path := range scripts {
		result.Scripts = append(result.Scripts, s.RunFile(path))
	}
	result.Entries = append(result.Entries, s.Entries()...)

	for _, sr := range result.Scripts {
		if sr.Status > result.Status {
			result.Status = sr.Status
		}
	}
	return r.finish(result, start)
}

func (r *Runner) finish(result Result, start time.Time) Result {
	result.Duration = time.Since(start)
	result.Millis = result.Duration.Milliseconds()
	r.Results = append(r.Results, result)
	r.Logger.Infof("page: %s %s in %s", result.Page, result.Status, result.Duration)
	return result
}

// Summary counts scripts by status across all runs.
func (r *Runner) Summary() (passed, failed, errored int) {
	for _, result := range r.Results {
		if result.Status == StatusError && len(result.Scripts) == 0 {
			errored++
		}
		for _, sr := range result.Scripts {
			switch sr.Status {
			case StatusPass:
				passed++
			case StatusFail:
				failed++
			case StatusError:
				errored++
			}
		}
	}
	return
}

// Failed reports whether any run did not pass.
func (r *Runner) Failed() bool {
	for _, result := range r.Results {
		if result.Status != StatusPass {
			return true
		}
	}
	return false
}

// ExportJSON exports all results as indented JSON.
func (r *Runner) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r.Results, "", "  ")
}

// ExportYAML exports all results as YAML.
func (r *Runner) ExportYAML() ([]byte, error) {
	return yaml.Marshal(r.Results)
}
