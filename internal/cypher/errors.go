package cypher

import "fmt"

// EmptyIdentifierError is returned when an empty name is encoded as a key,
// label or relationship type.
type EmptyIdentifierError struct{}

func (e *EmptyIdentifierError) Error() string {
	return "cypher: identifiers cannot be empty"
}

// UnsupportedValueError is returned for values the encoder does not model.
type UnsupportedValueError struct {
	Kind string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("cypher: values of type %s are not supported", e.Kind)
}
