package dom

import "fmt"

// Error represents a DOM operation failure with a name and message.
type Error struct {
	Name    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Common DOM error constructors

// ErrHierarchyRequest creates a HierarchyRequestError.
func ErrHierarchyRequest(message string) *Error {
	return &Error{Name: "HierarchyRequestError", Message: message}
}

// ErrNotFound creates a NotFoundError.
func ErrNotFound(message string) *Error {
	return &Error{Name: "NotFoundError", Message: message}
}

// ErrInvalidCharacter creates an InvalidCharacterError.
func ErrInvalidCharacter(message string) *Error {
	return &Error{Name: "InvalidCharacterError", Message: message}
}

// ErrSyntax creates a SyntaxError.
func ErrSyntax(message string) *Error {
	return &Error{Name: "SyntaxError", Message: message}
}

// ErrWrongDocument creates a WrongDocumentError.
func ErrWrongDocument(message string) *Error {
	return &Error{Name: "WrongDocumentError", Message: message}
}

// IsError reports whether err is a dom *Error with the given name.
func IsError(err error, name string) bool {
	domErr, ok := err.(*Error)
	return ok && domErr.Name == name
}
