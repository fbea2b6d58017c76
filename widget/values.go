package widget

import "strconv"

// coerceValue validates a caller-supplied value against the descriptor and
// returns its canonical form (bool, string, or float64). Values that do not
// fit the descriptor's domain fail with InvalidPropertyValue.
func coerceValue(d *Descriptor, value any) (any, error) {
	switch d.Type {
	case Bool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case String:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case Number:
		switch n := value.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		}
	case Enum:
		if s, ok := value.(string); ok {
			for _, allowed := range d.Enum {
				if s == allowed {
					return s, nil
				}
			}
			return nil, errInvalidPropertyValue("property %q: %q is not one of %v", d.Name, s, d.Enum)
		}
	}
	return nil, errInvalidPropertyValue("property %q: %v (%T) is not a valid %s", d.Name, value, value, d.Type)
}

// coerceExtracted converts a raw markup string into the descriptor's domain.
// Extraction is lenient: values that do not coerce are dropped, never
// reported.
func coerceExtracted(d *Descriptor, raw string) (any, bool) {
	switch d.Type {
	case Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false
		}
		return b, true
	case String:
		return raw, true
	case Number:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case Enum:
		for _, allowed := range d.Enum {
			if raw == allowed {
				return raw, true
			}
		}
		return nil, false
	}
	return nil, false
}

// formatValue serializes a canonical value for storage in an attribute.
func formatValue(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// valuesEqual compares two canonical values.
func valuesEqual(a, b any) bool {
	return a == b
}
