package widget

// Merge combines the three property sources into the widget's initial state.
// Precedence per property: explicit caller values beat extracted markup
// values beat descriptor defaults. Merge is pure; it never touches the DOM
// and never invents values for properties no source supplies.
func Merge(descs []Descriptor, defaults, extracted, explicit map[string]any) map[string]any {
	merged := make(map[string]any, len(descs))
	for i := range descs {
		name := descs[i].Name
		if value, ok := explicit[name]; ok {
			merged[name] = value
			continue
		}
		if value, ok := extracted[name]; ok {
			merged[name] = value
			continue
		}
		if value, ok := defaults[name]; ok {
			merged[name] = value
		}
	}
	return merged
}

// defaultsOf collects the non-nil descriptor defaults in canonical form.
func defaultsOf(descs []Descriptor) map[string]any {
	defaults := make(map[string]any, len(descs))
	for i := range descs {
		d := &descs[i]
		if d.Default == nil {
			continue
		}
		if value, err := coerceValue(d, d.Default); err == nil {
			defaults[d.Name] = value
		}
	}
	return defaults
}
