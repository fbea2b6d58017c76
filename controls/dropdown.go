package controls

import "github.com/chrisuehlinger/widgetkit/widget"

// Dropdown placement values.
const (
	PlacementBelow = "below"
	PlacementAbove = "above"
	PlacementAuto  = "auto"
)

// DropdownType is a disclosure container. Its open flag rides the "open"
// class token and binds both ways, so stylesheet-driven scripts toggling the
// class keep the widget in sync. Placement is a plain attribute enum.
var DropdownType = &widget.Type{
	Name:      "Dropdown",
	TagName:   "div",
	BaseClass: "widget-dropdown",
	Descriptors: []widget.Descriptor{
		{Name: "open", Type: widget.Bool, Default: false, Mapping: widget.ClassTokenMapping("open"), BindFromDOM: true, ChangeEvent: "toggled"},
		{Name: "disabled", Type: widget.Bool, Default: false, Mapping: widget.BoolAttributeMapping("disabled")},
		{Name: "placement", Type: widget.Enum, Enum: []string{PlacementBelow, PlacementAbove, PlacementAuto}, Default: PlacementBelow, Mapping: widget.AttributeMapping("data-placement")},
	},
}

// Dropdown wraps a widget of DropdownType.
type Dropdown struct {
	*widget.Widget
}

// NewDropdown constructs a Dropdown. See widget.New for option semantics.
func NewDropdown(opts widget.Options) (*Dropdown, error) {
	w, err := widget.New(DropdownType, opts)
	if err != nil {
		return nil, err
	}
	return &Dropdown{Widget: w}, nil
}

// IsOpen reports whether the dropdown is open.
func (d *Dropdown) IsOpen() bool {
	v, _ := d.Get("open")
	open, _ := v.(bool)
	return open
}

// Open shows the dropdown.
func (d *Dropdown) Open() error {
	return d.Set("open", true)
}

// Close hides the dropdown.
func (d *Dropdown) Close() error {
	return d.Set("open", false)
}

// Toggle flips the open state.
func (d *Dropdown) Toggle() error {
	return d.Set("open", !d.IsOpen())
}

// Placement returns the configured placement.
func (d *Dropdown) Placement() string {
	v, _ := d.Get("placement")
	placement, _ := v.(string)
	return placement
}

// SetPlacement sets the placement. Values outside below, above, and auto
// are rejected.
func (d *Dropdown) SetPlacement(placement string) error {
	return d.Set("placement", placement)
}
