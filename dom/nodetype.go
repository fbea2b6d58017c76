package dom

// NodeType identifies the kind of a Node.
type NodeType int

const (
	// ElementNode is an element such as <button> or <div>.
	ElementNode NodeType = 1
	// TextNode is a run of character data.
	TextNode NodeType = 3
	// CommentNode is a <!-- comment -->.
	CommentNode NodeType = 8
	// DocumentNode is the root #document node.
	DocumentNode NodeType = 9
	// DoctypeNode is a <!DOCTYPE ...> declaration.
	DoctypeNode NodeType = 10
)

// String returns a human-readable name for the node type.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	case DoctypeNode:
		return "Doctype"
	default:
		return "Unknown"
	}
}
