package widget

import (
	"strings"
	"testing"
)

func TestRegisterType_AndLookup(t *testing.T) {
	typ := &Type{
		Name:    "RegLookup",
		TagName: "button",
		Descriptors: []Descriptor{
			{Name: "label", Type: String, Mapping: TextContentMapping()},
		},
	}
	if err := RegisterType(typ); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}

	found, ok := LookupType("RegLookup")
	if !ok || found != typ {
		t.Error("Expected LookupType to return the registered type")
	}
	if _, ok := LookupType("RegMissing"); ok {
		t.Error("Expected unknown name to not resolve")
	}
}

func TestRegisterType_DuplicateName(t *testing.T) {
	first := &Type{Name: "RegDup"}
	if err := RegisterType(first); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}
	err := RegisterType(&Type{Name: "RegDup"})
	if err == nil {
		t.Fatal("Expected duplicate registration to fail")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("Expected duplicate-name error, got %v", err)
	}
	if found, _ := LookupType("RegDup"); found != first {
		t.Error("Expected the first registration to survive")
	}
}

func TestRegisterType_InvalidDescriptors(t *testing.T) {
	cases := []struct {
		name string
		typ  *Type
	}{
		{"empty type name", &Type{}},
		{"empty property name", &Type{Name: "RegBad1", Descriptors: []Descriptor{{Type: Bool}}}},
		{"duplicate property", &Type{Name: "RegBad2", Descriptors: []Descriptor{
			{Name: "x", Type: Bool}, {Name: "x", Type: Bool},
		}}},
		{"enum without values", &Type{Name: "RegBad3", Descriptors: []Descriptor{
			{Name: "placement", Type: Enum, Mapping: AttributeMapping("data-placement")},
		}}},
		{"enum values on non-enum", &Type{Name: "RegBad4", Descriptors: []Descriptor{
			{Name: "label", Type: String, Enum: []string{"a"}},
		}}},
		{"boolean attribute on string property", &Type{Name: "RegBad5", Descriptors: []Descriptor{
			{Name: "label", Type: String, Mapping: BoolAttributeMapping("label")},
		}}},
		{"class token on number property", &Type{Name: "RegBad6", Descriptors: []Descriptor{
			{Name: "count", Type: Number, Mapping: ClassTokenMapping("count")},
		}}},
		{"text content on bool property", &Type{Name: "RegBad7", Descriptors: []Descriptor{
			{Name: "on", Type: Bool, Mapping: TextContentMapping()},
		}}},
		{"bind without mapping", &Type{Name: "RegBad8", Descriptors: []Descriptor{
			{Name: "open", Type: Bool, BindFromDOM: true},
		}}},
		{"default outside domain", &Type{Name: "RegBad9", Descriptors: []Descriptor{
			{Name: "count", Type: Number, Default: "three"},
		}}},
		{"attribute mapping without name", &Type{Name: "RegBad10", Descriptors: []Descriptor{
			{Name: "x", Type: String, Mapping: AttributeMapping("")},
		}}},
	}
	for _, tc := range cases {
		if err := RegisterType(tc.typ); err == nil {
			t.Errorf("Expected registration to fail for %s", tc.name)
		}
	}
}

func TestRegisteredTypes_Sorted(t *testing.T) {
	if err := RegisterType(&Type{Name: "RegSortB"}); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}
	if err := RegisterType(&Type{Name: "RegSortA"}); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}

	all := RegisteredTypes()
	indexA, indexB := -1, -1
	for i, typ := range all {
		switch typ.Name {
		case "RegSortA":
			indexA = i
		case "RegSortB":
			indexB = i
		}
	}
	if indexA == -1 || indexB == -1 {
		t.Fatal("Expected both registered types in the listing")
	}
	if indexA > indexB {
		t.Error("Expected types sorted by name")
	}
}

func TestType_Descriptor(t *testing.T) {
	typ := &Type{
		Name: "DescLookup",
		Descriptors: []Descriptor{
			{Name: "label", Type: String},
			{Name: "checked", Type: Bool},
		},
	}
	if d := typ.Descriptor("checked"); d == nil || d.Name != "checked" {
		t.Error("Expected to find the checked descriptor")
	}
	if d := typ.Descriptor("missing"); d != nil {
		t.Error("Expected nil for an undeclared property")
	}
}

func TestMapping_String(t *testing.T) {
	cases := map[string]*Mapping{
		"attribute(data-placement)": AttributeMapping("data-placement"),
		"booleanAttribute(checked)": BoolAttributeMapping("checked"),
		"classToken(open)":          ClassTokenMapping("open"),
		"textContent":               TextContentMapping(),
	}
	for want, m := range cases {
		if got := m.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}
