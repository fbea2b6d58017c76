package dom

import "testing"

// recordingCallback collects mutation notifications for assertions.
type recordingCallback struct {
	attrs     []attrRecord
	childList []childListRecord
	charData  []charDataRecord
}

type attrRecord struct {
	target   *Element
	name     string
	oldValue string
	hadValue bool
}

type childListRecord struct {
	target  *Node
	added   []*Node
	removed []*Node
}

type charDataRecord struct {
	target   *Node
	oldValue string
}

func (r *recordingCallback) OnChildListMutation(target *Node, added, removed []*Node) {
	r.childList = append(r.childList, childListRecord{target, added, removed})
}

func (r *recordingCallback) OnAttributeMutation(target *Element, name, oldValue string, hadValue bool) {
	r.attrs = append(r.attrs, attrRecord{target, name, oldValue, hadValue})
}

func (r *recordingCallback) OnCharacterDataMutation(target *Node, oldValue string) {
	r.charData = append(r.charData, charDataRecord{target, oldValue})
}

func TestMutation_AttributeNotifications(t *testing.T) {
	doc := NewDocument()
	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	defer ClearMutationCallbacks(doc)

	el := doc.CreateElement("div")
	el.SetAttribute("data-x", "1")
	el.SetAttribute("data-x", "2")
	el.RemoveAttribute("data-x")

	if len(rec.attrs) != 3 {
		t.Fatalf("Expected 3 attribute records, got %d", len(rec.attrs))
	}
	if rec.attrs[0].hadValue {
		t.Error("Expected first record to mark the attribute as new")
	}
	if rec.attrs[1].oldValue != "1" || !rec.attrs[1].hadValue {
		t.Errorf("Expected old value '1' on change, got '%s'", rec.attrs[1].oldValue)
	}
	if rec.attrs[2].oldValue != "2" {
		t.Errorf("Expected old value '2' on removal, got '%s'", rec.attrs[2].oldValue)
	}
}

func TestMutation_SpuriousWriteSuppressed(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttribute("data-x", "1")

	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	defer ClearMutationCallbacks(doc)

	el.SetAttribute("data-x", "1")
	if len(rec.attrs) != 0 {
		t.Errorf("Expected no record for a same-value write, got %d", len(rec.attrs))
	}
}

func TestMutation_ChildListNotifications(t *testing.T) {
	doc := NewDocument()
	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	defer ClearMutationCallbacks(doc)

	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")
	parent.AsNode().AppendChild(child.AsNode())
	parent.AsNode().RemoveChild(child.AsNode())

	if len(rec.childList) != 2 {
		t.Fatalf("Expected 2 childList records, got %d", len(rec.childList))
	}
	add := rec.childList[0]
	if add.target != parent.AsNode() || len(add.added) != 1 || add.added[0] != child.AsNode() {
		t.Error("Expected first record to report the added child")
	}
	rm := rec.childList[1]
	if len(rm.removed) != 1 || rm.removed[0] != child.AsNode() {
		t.Error("Expected second record to report the removed child")
	}
}

func TestMutation_ClassListWritesNotify(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	defer ClearMutationCallbacks(doc)

	el.ClassList().Add("is-open")
	if len(rec.attrs) != 1 {
		t.Fatalf("Expected classList.Add to notify as a class mutation, got %d records", len(rec.attrs))
	}
	if rec.attrs[0].name != "class" {
		t.Errorf("Expected attribute name 'class', got '%s'", rec.attrs[0].name)
	}
}

func TestMutation_CharacterDataNotifications(t *testing.T) {
	doc := NewDocument()
	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	defer ClearMutationCallbacks(doc)

	text := doc.CreateTextNode("before")
	text.SetData("after")

	if len(rec.charData) != 1 {
		t.Fatalf("Expected 1 characterData record, got %d", len(rec.charData))
	}
	if rec.charData[0].oldValue != "before" {
		t.Errorf("Expected old value 'before', got '%s'", rec.charData[0].oldValue)
	}
}

func TestMutation_SetTextContentNotifiesChildList(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("p")
	el.AsNode().AppendChild(doc.CreateTextNode("old"))

	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	defer ClearMutationCallbacks(doc)

	el.AsNode().SetTextContent("new")
	if len(rec.childList) != 1 {
		t.Fatalf("Expected 1 childList record, got %d", len(rec.childList))
	}
	record := rec.childList[0]
	if len(record.removed) != 1 || len(record.added) != 1 {
		t.Errorf("Expected one removed and one added node, got %d/%d", len(record.removed), len(record.added))
	}
}

func TestMutation_Unregister(t *testing.T) {
	doc := NewDocument()
	rec := &recordingCallback{}
	RegisterMutationCallback(doc, rec)
	UnregisterMutationCallback(doc, rec)

	el := doc.CreateElement("div")
	el.SetAttribute("data-x", "1")

	if len(rec.attrs) != 0 {
		t.Errorf("Expected no records after unregister, got %d", len(rec.attrs))
	}
}
