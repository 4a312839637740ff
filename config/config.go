// Package config loads delegation settings from YAML files.
//
// Example file:
//
//	attribute: data-action
//	splitter: '\s+'
//	namespace: action-ns
//	eventType: click
//	logLevel: info
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/delegate/delegate"
	"github.com/chrisuehlinger/delegate/internal/log"
)

// File is the decoded configuration file. Empty fields fall back to the
// delegate package defaults.
type File struct {
	Attribute string `yaml:"attribute"`
	Splitter  string `yaml:"splitter"`
	Namespace string `yaml:"namespace"`
	EventType string `yaml:"eventType"`
	LogLevel  string `yaml:"logLevel"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Attribute: delegate.DefaultAttribute,
		Splitter:  delegate.DefaultSplitter,
		Namespace: delegate.DefaultNamespace,
		EventType: delegate.DefaultEventType,
		LogLevel:  "info",
	}
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates YAML configuration. Fields missing from the
// document keep their Default values.
func Parse(data []byte) (*File, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return f, nil
}

// Level returns the configured log level.
func (f *File) Level() log.Level {
	return log.LevelFromString(f.LogLevel)
}

// DelegateConfig converts the file into a delegate.Config.
func (f *File) DelegateConfig(logger *log.Logger) delegate.Config {
	cfg := delegate.Config{
		Namespace: f.Namespace,
		Logger:    logger,
	}
	cfg.SetDelegationAttribute(f.Attribute)
	cfg.SetKeySplitter(f.Splitter)
	return cfg
}
