package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML document using golang.org/x/net/html and
// converts the result into a Document.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := newDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		// Doctypes carry nothing the event layer needs.
		if c.Type == html.DoctypeNode {
			continue
		}
		if node := convertHTMLNode(c, doc); node != nil {
			doc.AsNode().insertBefore(node, nil)
		}
	}
	return doc, nil
}

// ParseHTMLString is a convenience wrapper around ParseHTML.
func ParseHTMLString(content string) (*Document, error) {
	return ParseHTML(strings.NewReader(content))
}

// parseHTMLFragment parses htmlContent in the context of the given element.
func parseHTMLFragment(htmlContent string, context *Element) ([]*Node, error) {
	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}

	doc := context.AsNode().ownerDoc
	result := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if node := convertHTMLNode(n, doc); node != nil {
			result = append(result, node)
		}
	}
	return result, nil
}

// convertHTMLNode converts an html.Node to a dom.Node. Returns nil for node
// types the tree does not model.
func convertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node

	switch n.Type {
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.ElementNode:
		el := doc.CreateElement(n.Data)
		for _, attr := range n.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		node = el.AsNode()
	case html.CommentNode:
		node = doc.CreateComment(n.Data)
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertHTMLNode(c, doc); child != nil {
			node.insertBefore(child, nil)
		}
	}
	return node
}

// toHTMLNode converts a dom.Node back into an html.Node tree for rendering.
func toHTMLNode(n *Node) *html.Node {
	var out *html.Node
	switch n.nodeType {
	case TextNode:
		out = &html.Node{Type: html.TextNode, Data: n.NodeValue()}
	case CommentNode:
		out = &html.Node{Type: html.CommentNode, Data: n.NodeValue()}
	case DocumentNode:
		out = &html.Node{Type: html.DocumentNode}
	case ElementNode:
		data := n.elementData
		out = &html.Node{
			Type:     html.ElementNode,
			Data:     data.localName,
			DataAtom: atom.Lookup([]byte(data.localName)),
		}
		for _, a := range data.attributes {
			out.Attr = append(out.Attr, html.Attribute{Key: a.name, Val: a.value})
		}
	default:
		return nil
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if child := toHTMLNode(c); child != nil {
			out.AppendChild(child)
		}
	}
	return out
}

// renderNode serializes n as HTML into w.
func renderNode(w io.Writer, n *Node) error {
	hn := toHTMLNode(n)
	if hn == nil {
		return nil
	}
	return html.Render(w, hn)
}
