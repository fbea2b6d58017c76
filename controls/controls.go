// Package controls ships the built-in widget types: buttons, toggle
// buttons, and dropdowns. Each is plain descriptor data over the widget
// engine; the structs here add typed sugar, not behavior.
package controls

import "github.com/chrisuehlinger/widgetkit/widget"

// RegisterAll adds the built-in types to the process-wide registry. Types
// already registered are left alone, so calling it more than once is safe.
func RegisterAll() error {
	for _, t := range []*widget.Type{ButtonType, ToggleButtonType, DropdownType} {
		if _, ok := widget.LookupType(t.Name); ok {
			continue
		}
		if err := widget.RegisterType(t); err != nil {
			return err
		}
	}
	return nil
}
