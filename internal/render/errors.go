package render

import "fmt"

// EncodingError reports a value the encoder could not render. It wraps a
// cypher.EmptyIdentifierError or cypher.UnsupportedValueError and ends the
// current statement without being mistaken for a database error.
type EncodingError struct {
	Column string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("render: %v", e.Err)
	}
	return fmt.Sprintf("render: column %s: %v", e.Column, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
