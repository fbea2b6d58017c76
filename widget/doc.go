// Package widget implements the progressive-enhancement widget engine:
// property descriptor tables, markup extraction, the three-source property
// merge, live instances with two-way DOM binding, the node-to-instance
// registry, and the declarative scanner.
//
// A widget Type declares its properties as data. Binding an instance to an
// existing element reads the element's markup for initial state, reconciles
// it with caller-supplied values and defaults, and writes the canonical
// result back. From then on the instance owns its node's mapped facets:
// property mutations update the markup, and for allow-listed properties,
// external markup edits flow back into state at the next Flush.
//
// Like the dom package, a document and the widgets bound to it belong to one
// goroutine. The process-wide registries (types, node bindings) are safe for
// concurrent use across documents.
package widget
