package dom

import (
	"strings"
)

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a Document holding an empty
// <html><head></head><body></body></html> skeleton.
func NewDocument() *Document {
	doc := newDocument()
	htmlEl := doc.CreateElement("html")
	htmlEl.AppendChild(doc.CreateElement("head").AsNode())
	htmlEl.AppendChild(doc.CreateElement("body").AsNode())
	doc.AsNode().insertBefore(htmlEl.AsNode(), nil)
	return doc
}

// newDocument creates a Document with no children.
func newDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for c := d.AsNode().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *Element {
	return d.rootChild("head")
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Element {
	return d.rootChild("body")
}

func (d *Document) rootChild(localName string) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if child.LocalName() == localName {
			return child
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name.
func (d *Document) CreateElement(tagName string) *Element {
	localName := strings.ToLower(tagName)
	node := newNode(ElementNode, strings.ToUpper(localName), d)
	node.elementData = &elementData{
		localName: localName,
		tagName:   strings.ToUpper(localName),
	}
	return (*Element)(node)
}

// CreateTextNode creates a new Text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.textData = &data
	return node
}

// CreateComment creates a new Comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.textData = &data
	return node
}

// GetElementById returns the first element in tree order whose id matches,
// or nil.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	walkElements(d.AsNode(), func(el *Element) bool {
		if el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// GetElementsWithAttribute returns every element carrying the named
// attribute, in tree order.
func (d *Document) GetElementsWithAttribute(name string) []*Element {
	var result []*Element
	walkElements(d.AsNode(), func(el *Element) bool {
		if el.HasAttribute(name) {
			result = append(result, el)
		}
		return true
	})
	return result
}

// GetElementsByTagName returns the elements whose local name matches
// tagName case-insensitively, in tree order. "*" matches every element.
func (d *Document) GetElementsByTagName(tagName string) []*Element {
	name := strings.ToLower(tagName)
	var result []*Element
	walkElements(d.AsNode(), func(el *Element) bool {
		if name == "*" || el.LocalName() == name {
			result = append(result, el)
		}
		return true
	})
	return result
}

// walkElements visits descendant elements of root in tree order until fn
// returns false.
func walkElements(root *Node, fn func(*Element) bool) bool {
	for c := root.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType != ElementNode {
			continue
		}
		if !fn((*Element)(c)) {
			return false
		}
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}

// Trigger dispatches a bubbling synthetic event on the document node.
func (d *Document) Trigger(eventType string) bool {
	return d.AsNode().Trigger(eventType)
}
