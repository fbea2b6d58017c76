package widget

import "fmt"

// Error represents a widget operation failure with a stable name and a
// human-readable message.
type Error struct {
	Name    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// errInvalidPropertyValue reports a value that fails a descriptor's
// validation, or a property name the type does not declare.
func errInvalidPropertyValue(format string, args ...any) *Error {
	return &Error{Name: "InvalidPropertyValue", Message: fmt.Sprintf(format, args...)}
}

// errNodeAlreadyBound reports a bind attempt on a node that already hosts a
// live widget.
func errNodeAlreadyBound(format string, args ...any) *Error {
	return &Error{Name: "NodeAlreadyBound", Message: fmt.Sprintf(format, args...)}
}

// errUnknownWidgetType reports a declarative reference to a type name that
// was never registered.
func errUnknownWidgetType(format string, args ...any) *Error {
	return &Error{Name: "UnknownWidgetType", Message: fmt.Sprintf(format, args...)}
}

// errMalformedPropertyString reports an inline property string that does not
// parse.
func errMalformedPropertyString(format string, args ...any) *Error {
	return &Error{Name: "MalformedPropertyString", Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether err is a widget *Error with the given name.
func IsError(err error, name string) bool {
	widgetErr, ok := err.(*Error)
	return ok && widgetErr.Name == name
}
