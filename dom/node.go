package dom

import (
	"strings"
)

// Node represents a node in the DOM tree. Document, Element and Text are
// views over the same struct, so a *Node is the identity used everywhere
// nodes are compared.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	elementData *elementData
	textData    *string

	// Event listeners attached to this node, in registration order.
	listeners []listenerEntry
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	tagName    string
	attributes []attribute
}

// attribute is a single name/value pair on an element. Order of insertion
// is preserved for serialization.
type attribute struct {
	name  string
	value string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name in uppercase.
// For text nodes, this is "#text".
// For documents, this is "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the character data of text and comment nodes and the
// empty string for every other node type.
func (n *Node) NodeValue() string {
	if n.textData != nil {
		return *n.textData
	}
	return ""
}

// OwnerDocument returns the document this node belongs to.
// Returns nil for Document nodes.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node, or nil if this is the first child.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildNodes returns a snapshot of the node's children.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// AsElement returns the node as an Element, or nil if it is not one.
func (n *Node) AsElement() *Element {
	if n == nil || n.nodeType != ElementNode {
		return nil
	}
	return (*Element)(n)
}

// GetRootNode returns the topmost ancestor of this node.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// IsConnected returns true if the node's root is a document.
func (n *Node) IsConnected() bool {
	return n.GetRootNode().nodeType == DocumentNode
}

// Contains returns true if other is an inclusive descendant of this node.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parentNode {
		if cur == n {
			return true
		}
	}
	return false
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode:
		return ""
	case TextNode, CommentNode:
		return n.NodeValue()
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.NodeValue())
		case ElementNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent replaces all children of an element with a single text
// node, or sets the data of a text or comment node.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode:
		return
	case TextNode, CommentNode:
		n.textData = &value
	default:
		for n.firstChild != nil {
			n.removeChild(n.firstChild)
		}
		if value != "" {
			n.AppendChild(n.ownerDoc.CreateTextNode(value))
		}
	}
}

// AppendChild adds a node to the end of the list of children of this node.
// For error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children of this node.
// Returns an error if the operation violates DOM hierarchy constraints.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
// For error-returning version, use InsertBeforeWithError.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
// Returns an error if the operation violates DOM hierarchy constraints.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if err := n.validatePreInsertion(newChild, refChild); err != nil {
		return nil, err
	}
	if refChild == newChild {
		refChild = newChild.nextSibling
	}
	if newChild.parentNode != nil {
		newChild.parentNode.removeChild(newChild)
	}
	n.insertBefore(newChild, refChild)
	return newChild, nil
}

// validatePreInsertion checks the hierarchy constraints for inserting node
// into n before child.
func (n *Node) validatePreInsertion(node, child *Node) error {
	if node == nil {
		return ErrHierarchyRequest("cannot insert a nil node")
	}
	if n.nodeType != ElementNode && n.nodeType != DocumentNode {
		return ErrHierarchyRequest("parent cannot have children")
	}
	if node.Contains(n) {
		return ErrHierarchyRequest("the new child is an ancestor of the parent")
	}
	if child != nil && child.parentNode != n {
		return ErrNotFound("the reference child is not a child of this node")
	}
	switch node.nodeType {
	case DocumentNode:
		return ErrHierarchyRequest("a document cannot be inserted")
	case TextNode:
		if n.nodeType == DocumentNode {
			return ErrHierarchyRequest("text cannot be a child of a document")
		}
	case ElementNode:
		if n.nodeType == DocumentNode && n.hasElementChildExcluding(node) {
			return ErrHierarchyRequest("a document can have only one element child")
		}
	}
	return nil
}

func (n *Node) hasElementChildExcluding(exclude *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode && c != exclude {
			return true
		}
	}
	return false
}

// insertBefore links newChild into the child list. newChild must be detached.
func (n *Node) insertBefore(newChild, refChild *Node) {
	newChild.parentNode = n
	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return
	}
	newChild.nextSibling = refChild
	newChild.prevSibling = refChild.prevSibling
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
}

// RemoveChild removes a child node from this node.
// For error-returning version, use RemoveChildWithError.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node.
// Returns NotFoundError if child is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("the node to be removed is not a child of this node")
	}
	n.removeChild(child)
	return child, nil
}

func (n *Node) removeChild(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// ClosestWithAttribute returns the nearest inclusive ancestor element of n
// that carries the named attribute. Non-element nodes start the search at
// their parent. Returns nil when no ancestor has the attribute.
func (n *Node) ClosestWithAttribute(name string) *Element {
	cur := n
	if cur != nil && cur.nodeType != ElementNode {
		cur = cur.parentNode
	}
	for cur != nil && cur.nodeType == ElementNode {
		el := (*Element)(cur)
		if el.HasAttribute(name) {
			return el
		}
		cur = cur.parentNode
	}
	return nil
}
