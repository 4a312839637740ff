package dom

import (
	"strings"
)

// Element represents an element in the DOM tree.
// Element inherits from Node and provides attribute access and HTML content.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the tag name of the element, uppercased for HTML.
func (e *Element) TagName() string {
	return e.AsNode().elementData.tagName
}

// LocalName returns the lowercase local name of the element.
func (e *Element) LocalName() string {
	return e.AsNode().elementData.localName
}

// Id returns the value of the id attribute.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// GetAttribute returns the value of the named attribute, or the empty string
// if it is absent. Names are matched case-insensitively as in HTML documents.
func (e *Element) GetAttribute(name string) string {
	if i := e.attributeIndex(name); i >= 0 {
		return e.AsNode().elementData.attributes[i].value
	}
	return ""
}

// TrimmedAttribute returns the named attribute value with surrounding
// whitespace removed.
func (e *Element) TrimmedAttribute(name string) string {
	return strings.TrimSpace(e.GetAttribute(name))
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.attributeIndex(name) >= 0
}

// SetAttribute sets the value of an attribute.
// For error-returning version, use SetAttributeWithError.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of an attribute.
// Returns InvalidCharacterError if the name is not a valid attribute name.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeName(name) {
		return ErrInvalidCharacter("the attribute name '" + name + "' is not valid")
	}
	data := e.AsNode().elementData
	if i := e.attributeIndex(name); i >= 0 {
		data.attributes[i].value = value
		return nil
	}
	data.attributes = append(data.attributes, attribute{name: strings.ToLower(name), value: value})
	return nil
}

// IsValidAttributeName reports whether name can be used as an attribute name.
func IsValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '/', '>', '=', '"', '\'', 0:
			return false
		}
	}
	return true
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	data := e.AsNode().elementData
	if i := e.attributeIndex(name); i >= 0 {
		data.attributes = append(data.attributes[:i], data.attributes[i+1:]...)
	}
}

// AttributeNames returns the element's attribute names in insertion order.
func (e *Element) AttributeNames() []string {
	attrs := e.AsNode().elementData.attributes
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.name
	}
	return names
}

func (e *Element) attributeIndex(name string) int {
	name = strings.ToLower(name)
	for i, a := range e.AsNode().elementData.attributes {
		if a.name == name {
			return i
		}
	}
	return -1
}

// ParentElement returns the parent Element, or nil.
func (e *Element) ParentElement() *Element {
	return e.AsNode().ParentElement()
}

// Children returns the element children of this element.
func (e *Element) Children() []*Element {
	var children []*Element
	for c := e.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			children = append(children, (*Element)(c))
		}
	}
	return children
}

// ClosestWithAttribute returns the nearest inclusive ancestor carrying name.
func (e *Element) ClosestWithAttribute(name string) *Element {
	return e.AsNode().ClosestWithAttribute(name)
}

// Remove detaches the element from its parent. It is a no-op for
// elements without a parent.
func (e *Element) Remove() {
	if parent := e.AsNode().parentNode; parent != nil {
		parent.removeChild(e.AsNode())
	}
}

// AppendChild appends child to this element.
func (e *Element) AppendChild(child *Node) *Node {
	return e.AsNode().AppendChild(child)
}

// TextContent returns the concatenated text of the element's descendants.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent replaces the element's children with a text node.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// InnerHTML returns the serialized HTML of the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		_ = renderNode(&sb, child)
	}
	return sb.String()
}

// OuterHTML returns the serialized HTML of the element itself.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	_ = renderNode(&sb, e.AsNode())
	return sb.String()
}

// SetInnerHTML parses htmlContent as a fragment in the context of this
// element and replaces the element's children with the result.
func (e *Element) SetInnerHTML(htmlContent string) error {
	nodes, err := parseHTMLFragment(htmlContent, e)
	if err != nil {
		return ErrSyntax(err.Error())
	}
	n := e.AsNode()
	for n.firstChild != nil {
		n.removeChild(n.firstChild)
	}
	for _, child := range nodes {
		n.insertBefore(child, nil)
	}
	return nil
}

// Trigger dispatches a bubbling, cancelable synthetic event of the given
// type on the element. It returns false if a listener prevented the default.
func (e *Element) Trigger(eventType string) bool {
	return e.AsNode().Trigger(eventType)
}
