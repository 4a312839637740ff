package delegate

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/chrisuehlinger/delegate/internal/log"
)

const (
	// DefaultAttribute is the attribute read for action keys.
	DefaultAttribute = "data-action"
	// DefaultSplitter separates action keys within the attribute value.
	DefaultSplitter = `\s+`
	// DefaultNamespace tags the delegating listeners so Reset removes only
	// its own.
	DefaultNamespace = "action-ns"
	// DefaultEventType is used when Register is given no event type.
	DefaultEventType = "click"
)

// ErrInvalidSplitter is returned by New when the key splitter does not
// compile.
var ErrInvalidSplitter = errors.New("invalid action key splitter")

// Config configures a Delegator. The zero value selects every default.
// The Delegator takes a copy at construction; later changes to the Config
// have no effect on it.
type Config struct {
	// Attribute is the delegation attribute name.
	Attribute string
	// Splitter is an ECMAScript regular expression separating action keys.
	Splitter string
	// Namespace is appended to event types of the delegating listeners.
	Namespace string
	// Host is the event subsystem. Defaults to DOMHost.
	Host Host
	// Logger receives debug traces. Nil disables logging.
	Logger *log.Logger

	attributeSet bool
	splitterSet  bool
}

// SetDelegationAttribute sets the attribute name. It has no effect once an
// attribute is set, whether by an earlier call or in the Config literal.
func (c *Config) SetDelegationAttribute(name string) {
	if c.attributeSet || c.Attribute != "" || name == "" {
		return
	}
	c.Attribute = name
	c.attributeSet = true
}

// SetKeySplitter sets the splitter pattern. It has no effect once a
// splitter is set, whether by an earlier call or in the Config literal.
func (c *Config) SetKeySplitter(pattern string) {
	if c.splitterSet || c.Splitter != "" || pattern == "" {
		return
	}
	c.Splitter = pattern
	c.splitterSet = true
}

// settings is the resolved, immutable form of a Config.
type settings struct {
	attribute string
	splitter  *regexp2.Regexp
	namespace string
	host      Host
	logger    *log.Logger
}

func (c Config) resolve() (settings, error) {
	s := settings{
		attribute: c.Attribute,
		namespace: c.Namespace,
		host:      c.Host,
		logger:    c.Logger,
	}
	if s.attribute == "" {
		s.attribute = DefaultAttribute
	}
	if s.namespace == "" {
		s.namespace = DefaultNamespace
	}
	if s.host == nil {
		s.host = DOMHost{}
	}

	pattern := c.Splitter
	if pattern == "" {
		pattern = DefaultSplitter
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return settings{}, fmt.Errorf("%w %q: %v", ErrInvalidSplitter, pattern, err)
	}
	s.splitter = re
	return s, nil
}
