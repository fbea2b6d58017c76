package widget

import (
	"log/slog"
	"strings"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// Declarative marker attributes.
const (
	// AttrWidgetType names the widget type on a declaring element.
	AttrWidgetType = "data-widget-type"
	// AttrProperties carries the inline property string.
	AttrProperties = "data-properties"
)

// logger receives scanner diagnostics. Other parts of the engine are silent.
var logger = slog.Default()

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// ScanIssue describes one declaration the scanner skipped.
type ScanIssue struct {
	// Node is the declaring element.
	Node *dom.Element
	// TypeName is the declared type name.
	TypeName string
	// Err is the reason the declaration was skipped: UnknownWidgetType,
	// MalformedPropertyString, or a construction error.
	Err error
}

// ScanOptions adjusts declarative scanning.
type ScanOptions struct {
	// IgnoreAliasAttributes disables per-property data-<name> attributes,
	// leaving data-properties as the only declarative property source.
	IgnoreAliasAttributes bool
}

// ScanDocument runs the declarative scanner over a whole document. See Scan.
func ScanDocument(doc *dom.Document, opts ...ScanOptions) []ScanIssue {
	if doc == nil {
		return nil
	}
	root := doc.DocumentElement()
	if root == nil {
		return nil
	}
	return Scan(root, opts...)
}

// Scan walks the subtree rooted at root in document order and enhances every
// element declaring data-widget-type. Each declaration is independent: an
// unknown type or a malformed property string is logged, reported in the
// result, and skipped without affecting other declarations. Elements already
// bound to a widget are left alone, so re-scanning is safe.
func Scan(root *dom.Element, opts ...ScanOptions) []ScanIssue {
	var options ScanOptions
	if len(opts) > 0 {
		options = opts[0]
	}
	if root == nil {
		return nil
	}

	var issues []ScanIssue
	root.AsNode().Walk(func(n *dom.Node) bool {
		el := n.AsElement()
		if el == nil {
			return true
		}
		typeName, declared := el.GetAttribute(AttrWidgetType)
		if !declared {
			return true
		}
		if GetByNode(n) != nil {
			return true
		}

		t, found := LookupType(typeName)
		if !found {
			err := errUnknownWidgetType("no registered widget type %q", typeName)
			logger.Warn("skipping widget declaration", "type", typeName, "error", err)
			issues = append(issues, ScanIssue{Node: el, TypeName: typeName, Err: err})
			return true
		}

		props, err := declaredProperties(el, t, options)
		if err != nil {
			logger.Warn("skipping widget declaration", "type", typeName, "error", err)
			issues = append(issues, ScanIssue{Node: el, TypeName: typeName, Err: err})
			return true
		}

		if _, err := New(t, Options{SrcNode: el, Properties: props}); err != nil {
			logger.Warn("skipping widget declaration", "type", typeName, "error", err)
			issues = append(issues, ScanIssue{Node: el, TypeName: typeName, Err: err})
		}
		return true
	})
	return issues
}

// declaredProperties collects the explicit properties an element declares:
// per-property alias attributes first, then the data-properties string,
// which is authoritative when both name a property.
func declaredProperties(el *dom.Element, t *Type, options ScanOptions) (map[string]any, error) {
	props := make(map[string]any)

	if !options.IgnoreAliasAttributes {
		for i := range t.Descriptors {
			d := &t.Descriptors[i]
			alias := "data-" + strings.ToLower(d.Name)
			if alias == AttrWidgetType || alias == AttrProperties {
				continue
			}
			raw, ok := el.GetAttribute(alias)
			if !ok {
				continue
			}
			if value, ok := coerceExtracted(d, raw); ok {
				props[d.Name] = value
			}
		}
	}

	if raw, ok := el.GetAttribute(AttrProperties); ok {
		parsed, err := ParsePropertyString(raw)
		if err != nil {
			return nil, err
		}
		for name, value := range parsed {
			props[name] = value
		}
	}
	return props, nil
}
