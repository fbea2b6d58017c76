package widget

import (
	"fmt"
	"sort"
	"sync"
)

// Type defines a kind of widget as data: its property descriptor table, the
// markup it fabricates when rendered programmatically, and its DOM event
// bridges. New widget kinds are new Type values, not new Go types.
type Type struct {
	// Name is the registry key, e.g. "ToggleButton".
	Name string
	// TagName is the element created by RenderTo. Empty means "div".
	TagName string
	// BaseClass is a class token added to fabricated nodes.
	BaseClass string
	// Descriptors is the property descriptor table.
	Descriptors []Descriptor
	// DOMEvents bridges node events to semantic widget events, e.g.
	// {"click": "press"}.
	DOMEvents map[string]string
	// Attach, if set, runs once per instance when it binds to a node.
	Attach func(*Widget)
}

// Descriptor returns the named descriptor, or nil.
func (t *Type) Descriptor(name string) *Descriptor {
	for i := range t.Descriptors {
		if t.Descriptors[i].Name == name {
			return &t.Descriptors[i]
		}
	}
	return nil
}

// validate checks the type definition before registration.
func (t *Type) validate() error {
	if t.Name == "" {
		return fmt.Errorf("widget type with empty name")
	}
	seen := make(map[string]bool, len(t.Descriptors))
	for i := range t.Descriptors {
		d := &t.Descriptors[i]
		if err := d.validate(); err != nil {
			return fmt.Errorf("type %q: %v", t.Name, err)
		}
		if seen[d.Name] {
			return fmt.Errorf("type %q: duplicate property %q", t.Name, d.Name)
		}
		seen[d.Name] = true
	}
	for domEvent, semantic := range t.DOMEvents {
		if domEvent == "" || semantic == "" {
			return fmt.Errorf("type %q: empty DOM event bridge", t.Name)
		}
	}
	return nil
}

var (
	typesMu sync.RWMutex
	types   = make(map[string]*Type)
)

// RegisterType adds a widget type to the process-wide registry. Registering
// an invalid type or a duplicate name fails; registered types are never
// removed.
func RegisterType(t *Type) error {
	if t == nil {
		return fmt.Errorf("nil widget type")
	}
	if err := t.validate(); err != nil {
		return err
	}
	typesMu.Lock()
	defer typesMu.Unlock()
	if _, exists := types[t.Name]; exists {
		return fmt.Errorf("widget type %q already registered", t.Name)
	}
	types[t.Name] = t
	return nil
}

// LookupType returns the registered type with the given name.
func LookupType(name string) (*Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := types[name]
	return t, ok
}

// RegisteredTypes returns all registered types sorted by name.
func RegisteredTypes() []*Type {
	typesMu.RLock()
	defer typesMu.RUnlock()
	result := make([]*Type, 0, len(types))
	for _, t := range types {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
