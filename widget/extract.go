package widget

import (
	"strings"

	"github.com/chrisuehlinger/widgetkit/dom"
)

// Extract reads the initial property values a host node's markup encodes,
// per the descriptor table's mappings. The result is a partial map:
//
//   - attribute mappings contribute only when the attribute is present and
//     its value coerces to the property's type;
//   - boolean attribute and class token mappings always contribute, since
//     absence is a definite false;
//   - text content contributes the trimmed text when non-empty.
//
// Mappingless descriptors never appear in the result. Extraction never
// fails; uncoercible markup values are dropped.
func Extract(el *dom.Element, descs []Descriptor) map[string]any {
	extracted := make(map[string]any)
	if el == nil {
		return extracted
	}
	for i := range descs {
		d := &descs[i]
		if d.Mapping == nil {
			continue
		}
		if value, ok := extractProperty(el, d); ok {
			extracted[d.Name] = value
		}
	}
	return extracted
}

// extractProperty reads one mapped property from the node.
func extractProperty(el *dom.Element, d *Descriptor) (any, bool) {
	switch d.Mapping.kind {
	case mappingAttribute:
		raw, ok := el.GetAttribute(d.Mapping.name)
		if !ok {
			return nil, false
		}
		return coerceExtracted(d, raw)

	case mappingBoolAttribute:
		return el.HasAttribute(d.Mapping.name), true

	case mappingClassToken:
		return el.ClassList().Contains(d.Mapping.name), true

	case mappingTextContent:
		text := strings.TrimSpace(el.AsNode().TextContent())
		if text == "" {
			return nil, false
		}
		return text, true
	}
	return nil, false
}
