package widget

import (
	"testing"

	"github.com/chrisuehlinger/widgetkit/dom"
)

func makeElement(t *testing.T, tag string) *dom.Element {
	t.Helper()
	doc := dom.NewDocument()
	el := doc.CreateElement(tag)
	if el == nil {
		t.Fatalf("CreateElement(%q) returned nil", tag)
	}
	return el
}

func TestExtract_Attribute(t *testing.T) {
	el := makeElement(t, "div")
	el.SetAttribute("data-placement", "above")

	descs := []Descriptor{
		{Name: "placement", Type: Enum, Enum: []string{"below", "above", "auto"}, Mapping: AttributeMapping("data-placement")},
	}
	extracted := Extract(el, descs)

	if got, ok := extracted["placement"]; !ok || got != "above" {
		t.Errorf("Expected placement 'above', got %v (present=%v)", got, ok)
	}
}

func TestExtract_AttributeAbsent(t *testing.T) {
	el := makeElement(t, "div")
	descs := []Descriptor{
		{Name: "placement", Type: String, Mapping: AttributeMapping("data-placement")},
	}
	extracted := Extract(el, descs)

	if _, ok := extracted["placement"]; ok {
		t.Error("Expected absent attribute to contribute nothing")
	}
}

func TestExtract_AttributeCoercion(t *testing.T) {
	el := makeElement(t, "div")
	el.SetAttribute("data-count", "42")
	el.SetAttribute("data-rate", "not-a-number")
	el.SetAttribute("data-live", "true")

	descs := []Descriptor{
		{Name: "count", Type: Number, Mapping: AttributeMapping("data-count")},
		{Name: "rate", Type: Number, Mapping: AttributeMapping("data-rate")},
		{Name: "live", Type: Bool, Mapping: AttributeMapping("data-live")},
	}
	extracted := Extract(el, descs)

	if got := extracted["count"]; got != float64(42) {
		t.Errorf("Expected count 42, got %v", got)
	}
	if _, ok := extracted["rate"]; ok {
		t.Error("Expected uncoercible number to be dropped silently")
	}
	if got := extracted["live"]; got != true {
		t.Errorf("Expected live true, got %v", got)
	}
}

func TestExtract_EnumRejectsUnknownValue(t *testing.T) {
	el := makeElement(t, "div")
	el.SetAttribute("data-placement", "sideways")

	descs := []Descriptor{
		{Name: "placement", Type: Enum, Enum: []string{"below", "above"}, Mapping: AttributeMapping("data-placement")},
	}
	extracted := Extract(el, descs)

	if _, ok := extracted["placement"]; ok {
		t.Error("Expected out-of-enum value to be dropped silently")
	}
}

func TestExtract_BooleanAttribute(t *testing.T) {
	el := makeElement(t, "button")
	el.SetAttribute("checked", "")

	descs := []Descriptor{
		{Name: "checked", Type: Bool, Mapping: BoolAttributeMapping("checked")},
		{Name: "disabled", Type: Bool, Mapping: BoolAttributeMapping("disabled")},
	}
	extracted := Extract(el, descs)

	if got := extracted["checked"]; got != true {
		t.Errorf("Expected presence to extract true, got %v", got)
	}
	got, ok := extracted["disabled"]
	if !ok {
		t.Fatal("Expected absence to extract a definite false, not nothing")
	}
	if got != false {
		t.Errorf("Expected absent boolean attribute to be false, got %v", got)
	}
}

func TestExtract_BooleanAttributeAnyValue(t *testing.T) {
	el := makeElement(t, "button")
	el.SetAttribute("checked", "checked")

	descs := []Descriptor{
		{Name: "checked", Type: Bool, Mapping: BoolAttributeMapping("checked")},
	}
	if got := Extract(el, descs)["checked"]; got != true {
		t.Errorf("Expected any attribute value to mean presence, got %v", got)
	}
}

func TestExtract_ClassToken(t *testing.T) {
	el := makeElement(t, "div")
	el.SetClassName("dropdown open")

	descs := []Descriptor{
		{Name: "open", Type: Bool, Mapping: ClassTokenMapping("open")},
		{Name: "pinned", Type: Bool, Mapping: ClassTokenMapping("pinned")},
	}
	extracted := Extract(el, descs)

	if got := extracted["open"]; got != true {
		t.Errorf("Expected token presence to extract true, got %v", got)
	}
	if got, ok := extracted["pinned"]; !ok || got != false {
		t.Errorf("Expected token absence to extract a definite false, got %v (present=%v)", got, ok)
	}
}

func TestExtract_TextContent(t *testing.T) {
	el := makeElement(t, "button")
	el.AsNode().SetTextContent("  Go  ")

	descs := []Descriptor{
		{Name: "label", Type: String, Mapping: TextContentMapping()},
	}
	if got := Extract(el, descs)["label"]; got != "Go" {
		t.Errorf("Expected trimmed 'Go', got %v", got)
	}
}

func TestExtract_TextContentEmpty(t *testing.T) {
	el := makeElement(t, "button")
	el.AsNode().SetTextContent("   ")

	descs := []Descriptor{
		{Name: "label", Type: String, Mapping: TextContentMapping()},
	}
	if _, ok := Extract(el, descs)["label"]; ok {
		t.Error("Expected whitespace-only text to contribute nothing")
	}
}

func TestExtract_MappinglessIgnored(t *testing.T) {
	el := makeElement(t, "div")
	descs := []Descriptor{
		{Name: "internal", Type: String},
	}
	if len(Extract(el, descs)) != 0 {
		t.Error("Expected mappingless descriptors to never extract")
	}
}
