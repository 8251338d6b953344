package headers

import "fmt"

// Value is the value of a name in a `Headers` initializer. It is either a
// `SingleValue` or a `MultiValue`.
type Value interface {
	seed(h *Headers, name string)
}

// SingleValue is a `Value` that sets exactly one value.
type SingleValue string

// seed implements the `Value`.
func (sv SingleValue) seed(h *Headers, name string) {
	h.Set(name, string(sv))
}

// MultiValue is a `Value` that appends its values in order. An empty
// `MultiValue` seeds nothing.
type MultiValue []string

// seed implements the `Value`.
func (mv MultiValue) seed(h *Headers, name string) {
	for _, v := range mv {
		h.Append(name, v)
	}
}

// MalformedValueError is the error that an initializer value is neither a
// string nor a non-empty sequence of strings.
type MalformedValueError struct {
	Name  string
	Value interface{}
}

// Error implements the `error`.
func (e *MalformedValueError) Error() string {
	return fmt.Sprintf(
		"headers: malformed value %#v for %q",
		e.Value,
		e.Name,
	)
}
