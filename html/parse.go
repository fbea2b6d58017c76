// Package html parses HTML markup into dom trees and serializes dom trees
// back to markup, using golang.org/x/net/html as the underlying parser.
package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// Parse reads a complete HTML document from r. The parser is forgiving in the
// usual HTML way; missing html/head/body elements are synthesized.
func Parse(r io.Reader) (*dom.Document, error) {
	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := dom.NewDocument()
	convertChildren(netDoc, doc.AsNode(), doc)
	return doc, nil
}

// ParseString parses a complete HTML document from a string.
func ParseString(content string) (*dom.Document, error) {
	return Parse(strings.NewReader(content))
}

// ParseFragment parses markup in the context of the given element and returns
// the detached top-level nodes. A nil context parses as if inside <body>.
func ParseFragment(fragment string, context *dom.Element) ([]*dom.Node, error) {
	contextName := "body"
	var doc *dom.Document
	if context != nil {
		contextName = context.LocalName()
		doc = context.AsNode().OwnerDocument()
	}
	if doc == nil {
		doc = dom.NewDocument()
	}

	netContext := &html.Node{
		Type:     html.ElementNode,
		Data:     contextName,
		DataAtom: atom.Lookup([]byte(contextName)),
	}
	netNodes, err := html.ParseFragment(strings.NewReader(fragment), netContext)
	if err != nil {
		return nil, err
	}

	holder := doc.CreateElement(contextName)
	for _, netNode := range netNodes {
		convertTo(netNode, holder.AsNode(), doc)
	}
	nodes := holder.AsNode().ChildNodes()
	for _, node := range nodes {
		holder.AsNode().RemoveChild(node)
	}
	return nodes, nil
}

// convertChildren converts the children of src into dom nodes under parent.
func convertChildren(src *html.Node, parent *dom.Node, doc *dom.Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		convertTo(c, parent, doc)
	}
}

// convertTo converts one net/html node (and its subtree) into a dom node
// appended to parent.
func convertTo(src *html.Node, parent *dom.Node, doc *dom.Document) {
	var node *dom.Node

	switch src.Type {
	case html.TextNode:
		node = doc.CreateTextNode(src.Data)

	case html.ElementNode:
		el := doc.CreateElement(src.Data)
		if el == nil {
			return
		}
		for _, attr := range src.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		node = el.AsNode()

	case html.CommentNode:
		node = doc.CreateComment(src.Data)

	case html.DoctypeNode:
		node = doc.CreateDoctype(src.Data)

	case html.DocumentNode:
		convertChildren(src, parent, doc)
		return

	default:
		return
	}

	parent.AppendChild(node)
	if src.Type == html.ElementNode {
		convertChildren(src, node, doc)
	}
}
