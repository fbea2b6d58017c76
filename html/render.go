package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// Render serializes the node and its subtree as HTML markup.
func Render(w io.Writer, n *dom.Node) error {
	netNode := toNetNode(n)
	if netNode == nil {
		return nil
	}
	return html.Render(w, netNode)
}

// RenderString serializes the node and its subtree to a string.
func RenderString(n *dom.Node) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderDocument serializes a whole document, doctype included.
func RenderDocument(w io.Writer, doc *dom.Document) error {
	return Render(w, doc.AsNode())
}

// toNetNode converts a dom subtree back into net/html nodes for rendering.
func toNetNode(n *dom.Node) *html.Node {
	var netNode *html.Node

	switch n.NodeType() {
	case dom.DocumentNode:
		netNode = &html.Node{Type: html.DocumentNode}

	case dom.ElementNode:
		el := n.AsElement()
		netNode = &html.Node{
			Type:     html.ElementNode,
			Data:     el.LocalName(),
			DataAtom: atom.Lookup([]byte(el.LocalName())),
		}
		for _, attr := range el.Attributes() {
			netNode.Attr = append(netNode.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
		}

	case dom.TextNode:
		netNode = &html.Node{Type: html.TextNode, Data: n.Data()}

	case dom.CommentNode:
		netNode = &html.Node{Type: html.CommentNode, Data: n.Data()}

	case dom.DoctypeNode:
		netNode = &html.Node{Type: html.DoctypeNode, Data: n.Data()}

	default:
		return nil
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if child := toNetNode(c); child != nil {
			netNode.AppendChild(child)
		}
	}
	return netNode
}
