package delegate

import (
	"github.com/dlclark/regexp2"

	"github.com/chrisuehlinger/delegate/dom"
)

// resolve finds the action node for target and its trimmed attribute
// value. Both are zero when no ancestor carries the attribute.
func (d *Delegator) resolve(target *dom.Node) (*dom.Node, string) {
	node := d.host.ClosestWithAttribute(target, d.attribute)
	if node == nil {
		return nil, ""
	}
	return node, d.host.TrimmedAttribute(node, d.attribute)
}

// splitKeys splits an attribute value into action keys, in order.
// Duplicates are kept. Unlike JavaScript's String.prototype.split, empty
// fragments are skipped, so "a,,b" split on "," yields a and b and never
// an empty key, and zero-width separator matches do not split: a splitter
// that only matches empty strings leaves the value as one key.
func splitKeys(re *regexp2.Regexp, value string) []string {
	if value == "" {
		return nil
	}
	runes := []rune(value)
	var keys []string
	last := 0

	// regexp2 reports positions in runes, not bytes.
	m, err := re.FindRunesMatch(runes)
	for err == nil && m != nil {
		if m.Length > 0 {
			if m.Index > last {
				keys = append(keys, string(runes[last:m.Index]))
			}
			last = m.Index + m.Length
		}
		m, err = re.FindNextMatch(m)
	}
	if last < len(runes) {
		keys = append(keys, string(runes[last:]))
	}
	return keys
}
