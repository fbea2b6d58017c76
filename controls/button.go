package controls

import (
	"github.com/chrisuehlinger/widgetkit/dom"
	"github.com/chrisuehlinger/widgetkit/widget"
)

// ButtonType is a push button. Its label lives in the element text, its
// disabled and checked flags in the matching boolean attributes, and a DOM
// click surfaces as the semantic "press" event.
var ButtonType = &widget.Type{
	Name:      "Button",
	TagName:   "button",
	BaseClass: "widget-button",
	Descriptors: []widget.Descriptor{
		{Name: "label", Type: widget.String, Mapping: widget.TextContentMapping()},
		{Name: "disabled", Type: widget.Bool, Default: false, Mapping: widget.BoolAttributeMapping("disabled")},
		{Name: "checked", Type: widget.Bool, Default: false, Mapping: widget.BoolAttributeMapping("checked")},
	},
	DOMEvents: map[string]string{"click": "press"},
}

// Button wraps a widget of ButtonType.
type Button struct {
	*widget.Widget
}

// NewButton constructs a Button. See widget.New for option semantics.
func NewButton(opts widget.Options) (*Button, error) {
	w, err := widget.New(ButtonType, opts)
	if err != nil {
		return nil, err
	}
	return &Button{Widget: w}, nil
}

// Label returns the current label text.
func (b *Button) Label() string {
	v, _ := b.Get("label")
	s, _ := v.(string)
	return s
}

// SetLabel sets the label text.
func (b *Button) SetLabel(label string) error {
	return b.Set("label", label)
}

// Press activates the button as a user click would, firing "press" through
// the DOM bridge. Unbound or destroyed buttons ignore it.
func (b *Button) Press() {
	press(b.Widget)
}

func press(w *widget.Widget) {
	node := w.Node()
	if node == nil || w.Destroyed() {
		return
	}
	node.AsNode().DispatchEvent(dom.NewEvent("click", dom.EventInit{Bubbles: true, Cancelable: true}))
}
