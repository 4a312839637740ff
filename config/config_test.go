package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/dom"
	"github.com/chrisuehlinger/delegate/internal/log"
)

func TestParseOverridesDefaults(t *testing.T) {
	f, err := Parse([]byte("attribute: data-do\nsplitter: ','\nlogLevel: DEBUG\n"))
	require.NoError(t, err)

	assert.Equal(t, "data-do", f.Attribute)
	assert.Equal(t, ",", f.Splitter)
	assert.Equal(t, delegate.DefaultNamespace, f.Namespace)
	assert.Equal(t, delegate.DefaultEventType, f.EventType)
	assert.Equal(t, log.LevelDebug, f.Level())
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "colour: red\n",
		"bad attribute":     "attribute: 'data action'\n",
		"namespaced type":   "eventType: click.ns\n",
		"bad level":         "logLevel: loud\n",
		"empty splitter":    "splitter: ''\n",
		"non-string":        "attribute: [a, b]\n",
		"not a mapping":     "- a\n- b\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("attribute: [unclosed\n"))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "delegate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("namespace: menus\neventType: mouseover\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "menus", f.Namespace)
	assert.Equal(t, "mouseover", f.EventType)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDelegateConfig(t *testing.T) {
	f, err := Parse([]byte("attribute: data-do\nsplitter: '\\s*;\\s*'\nnamespace: cfg\n"))
	require.NoError(t, err)

	doc := dom.NewDocument()
	d, err := delegate.New(doc, f.DelegateConfig(nil))
	require.NoError(t, err)
	assert.Equal(t, "data-do", d.Attribute())

	el := doc.CreateElement("button")
	el.SetAttribute("data-do", "save ; close")
	doc.Body().AppendChild(el.AsNode())

	var keys []string
	rec := func(e *delegate.Event) { keys = append(keys, e.ActionKey) }
	d.Register(delegate.Actions{"save": rec, "close": rec}, nil, f.EventType)
	el.Trigger("click")

	assert.Equal(t, []string{"save", "close"}, keys)
	assert.Equal(t, "click.cfg", d.Entries()[0].EventType())
}
