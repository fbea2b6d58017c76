package controls

import "github.com/chrisuehlinger/widgetkit/widget"

// ToggleButtonType is a two-state button. Each press flips checked, and the
// checked transition additionally fires "toggled".
var ToggleButtonType = &widget.Type{
	Name:      "ToggleButton",
	TagName:   "button",
	BaseClass: "widget-toggle",
	Descriptors: []widget.Descriptor{
		{Name: "label", Type: widget.String, Mapping: widget.TextContentMapping()},
		{Name: "disabled", Type: widget.Bool, Default: false, Mapping: widget.BoolAttributeMapping("disabled")},
		{Name: "checked", Type: widget.Bool, Default: false, Mapping: widget.BoolAttributeMapping("checked"), ChangeEvent: "toggled"},
	},
	DOMEvents: map[string]string{"click": "press"},
	Attach: func(w *widget.Widget) {
		w.On("press", func(e *widget.Event) {
			if disabled, _ := w.Get("disabled"); disabled == true {
				return
			}
			checked, _ := w.Get("checked")
			w.Set("checked", checked != true)
		})
	},
}

// ToggleButton wraps a widget of ToggleButtonType.
type ToggleButton struct {
	*widget.Widget
}

// NewToggleButton constructs a ToggleButton. See widget.New for option
// semantics.
func NewToggleButton(opts widget.Options) (*ToggleButton, error) {
	w, err := widget.New(ToggleButtonType, opts)
	if err != nil {
		return nil, err
	}
	return &ToggleButton{Widget: w}, nil
}

// Checked reports the current checked state.
func (b *ToggleButton) Checked() bool {
	v, _ := b.Get("checked")
	checked, _ := v.(bool)
	return checked
}

// Press activates the button as a user click would. A press on an enabled
// button flips checked.
func (b *ToggleButton) Press() {
	press(b.Widget)
}
