package cli

import (
	"fmt"
	"os"

	"github.com/chrisuehlinger/widgetkit/dom"
	"github.com/chrisuehlinger/widgetkit/html"
	"github.com/chrisuehlinger/widgetkit/widget"
)

// loadPage parses an HTML file into a document.
func loadPage(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument serializes the document to the given path, or to stdout when
// path is empty.
func writeDocument(doc *dom.Document, path string) error {
	if path == "" {
		return html.RenderDocument(os.Stdout, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return html.RenderDocument(f, doc)
}

// boundWidgets collects the live widgets bound under the document, in
// document order.
func boundWidgets(doc *dom.Document) []*widget.Widget {
	var widgets []*widget.Widget
	doc.AsNode().Walk(func(n *dom.Node) bool {
		if w := widget.GetByNode(n); w != nil {
			widgets = append(widgets, w)
		}
		return true
	})
	return widgets
}

// destroyWidgets tears down every widget bound under the document. Watch
// mode re-parses pages repeatedly; dropping the old page's instances keeps
// the process-wide registry from accumulating dead entries.
func destroyWidgets(doc *dom.Document) {
	for _, w := range boundWidgets(doc) {
		w.Destroy()
	}
}

// describeNode renders a short identification of an element for reports.
func describeNode(el *dom.Element) string {
	if el == nil {
		return "?"
	}
	if id := el.Id(); id != "" {
		return fmt.Sprintf("<%s id=%q>", el.LocalName(), id)
	}
	return fmt.Sprintf("<%s>", el.LocalName())
}
