package widget

import "fmt"

// SemanticType is the value domain of a property.
type SemanticType int

const (
	// Bool properties hold true or false.
	Bool SemanticType = iota
	// String properties hold free-form text.
	String
	// Number properties hold float64 values.
	Number
	// Enum properties hold one string out of the descriptor's Enum list.
	Enum
)

// String returns a human-readable name for the semantic type.
func (t SemanticType) String() string {
	switch t {
	case Bool:
		return "bool"
	case String:
		return "string"
	case Number:
		return "number"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Descriptor declares one property of a widget type: its name, value domain,
// default, and how it maps onto the host node's markup.
type Descriptor struct {
	// Name is the property name, unique within the type.
	Name string
	// Type is the property's value domain.
	Type SemanticType
	// Default is the value used when neither markup nor the caller supplies
	// one. nil means the property starts unset.
	Default any
	// Mapping ties the property to a markup facet of the host node. nil
	// means the property lives only in memory.
	Mapping *Mapping
	// Enum lists the allowed values for Enum-typed properties.
	Enum []string
	// BindFromDOM opts the property into markup-to-state observation.
	// State-to-markup writing is unconditional for mapped properties; this
	// allow-list governs only the reverse direction.
	BindFromDOM bool
	// ChangeEvent optionally names a semantic event fired after
	// propertyChanged whenever this property changes.
	ChangeEvent string
}

type mappingKind int

const (
	mappingAttribute mappingKind = iota
	mappingBoolAttribute
	mappingClassToken
	mappingTextContent
)

// Mapping describes the markup facet a property is stored in. Construct one
// with AttributeMapping, BoolAttributeMapping, ClassTokenMapping, or
// TextContentMapping; each mapping is exactly one of those kinds.
type Mapping struct {
	kind mappingKind
	name string
}

// AttributeMapping stores the property's serialized value in the named
// attribute.
func AttributeMapping(name string) *Mapping {
	return &Mapping{kind: mappingAttribute, name: name}
}

// BoolAttributeMapping encodes the property as presence or absence of the
// named attribute.
func BoolAttributeMapping(name string) *Mapping {
	return &Mapping{kind: mappingBoolAttribute, name: name}
}

// ClassTokenMapping encodes the property as presence or absence of a class
// token.
func ClassTokenMapping(token string) *Mapping {
	return &Mapping{kind: mappingClassToken, name: token}
}

// TextContentMapping stores the property as the node's text content.
func TextContentMapping() *Mapping {
	return &Mapping{kind: mappingTextContent}
}

// String returns the mapping in "kind(target)" form.
func (m *Mapping) String() string {
	switch m.kind {
	case mappingAttribute:
		return fmt.Sprintf("attribute(%s)", m.name)
	case mappingBoolAttribute:
		return fmt.Sprintf("booleanAttribute(%s)", m.name)
	case mappingClassToken:
		return fmt.Sprintf("classToken(%s)", m.name)
	case mappingTextContent:
		return "textContent"
	default:
		return "invalid"
	}
}

// observesAttribute reports whether a change to the named attribute can alter
// this mapping's facet.
func (m *Mapping) observesAttribute(attrName string) bool {
	switch m.kind {
	case mappingAttribute, mappingBoolAttribute:
		return m.name == attrName
	case mappingClassToken:
		return attrName == "class"
	default:
		return false
	}
}

// validate checks a descriptor's internal consistency.
func (d *Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor with empty name")
	}
	if d.Type == Enum && len(d.Enum) == 0 {
		return fmt.Errorf("property %q: enum type without allowed values", d.Name)
	}
	if d.Type != Enum && len(d.Enum) > 0 {
		return fmt.Errorf("property %q: allowed-value list on non-enum type", d.Name)
	}
	if d.Mapping != nil {
		switch d.Mapping.kind {
		case mappingAttribute:
			if d.Mapping.name == "" {
				return fmt.Errorf("property %q: attribute mapping without a name", d.Name)
			}
		case mappingBoolAttribute:
			if d.Mapping.name == "" {
				return fmt.Errorf("property %q: boolean attribute mapping without a name", d.Name)
			}
			if d.Type != Bool {
				return fmt.Errorf("property %q: boolean attribute mapping requires bool type", d.Name)
			}
		case mappingClassToken:
			if d.Mapping.name == "" {
				return fmt.Errorf("property %q: class token mapping without a token", d.Name)
			}
			if d.Type != Bool {
				return fmt.Errorf("property %q: class token mapping requires bool type", d.Name)
			}
		case mappingTextContent:
			if d.Type != String {
				return fmt.Errorf("property %q: text content mapping requires string type", d.Name)
			}
		default:
			return fmt.Errorf("property %q: invalid mapping", d.Name)
		}
	}
	if d.BindFromDOM && d.Mapping == nil {
		return fmt.Errorf("property %q: BindFromDOM without a mapping", d.Name)
	}
	if d.Default != nil {
		if _, err := coerceValue(d, d.Default); err != nil {
			return fmt.Errorf("property %q: invalid default: %v", d.Name, err)
		}
	}
	return nil
}
