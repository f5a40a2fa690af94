package cypher

import "fmt"

// Value is one of the graph value kinds the encoder models. The set is
// closed: only types in this package implement it.
type Value interface {
	kind() string
}

// Null is the absent value.
type Null struct{}

// Boolean is a true/false value.
type Boolean bool

// Integer is a signed 64-bit integer.
type Integer int64

// Float is a 64-bit floating point number.
type Float float64

// String is a character string.
type String string

// Bytes is a byte string, decoded with the configured character encoding
// before it is rendered.
type Bytes []byte

// List is an ordered sequence of values.
type List []Value

// Map is a set of uniquely named values. It renders in key order.
type Map map[string]Value

// Node is a graph node. ID identifies the node within a result and is used
// to compare nodes while walking a path.
type Node struct {
	ID         string
	Labels     []string
	Properties Map
}

// Relationship is a typed, directed connection between two nodes. Start and
// End refer to nodes owned elsewhere (usually by the enclosing Path).
type Relationship struct {
	ID         string
	Type       string
	Properties Map
	Start      *Node
	End        *Node
}

// Path is an alternating sequence of nodes and relationships. It always has
// exactly one more node than relationships.
type Path struct {
	Nodes         []*Node
	Relationships []*Relationship
}

// Opaque wraps a driver value that has no representation in this package.
// Encoding it always fails with an UnsupportedValueError.
type Opaque struct {
	Native any
}

func (Null) kind() string          { return "null" }
func (Boolean) kind() string       { return "boolean" }
func (Integer) kind() string       { return "integer" }
func (Float) kind() string         { return "float" }
func (String) kind() string        { return "string" }
func (Bytes) kind() string         { return "bytes" }
func (List) kind() string          { return "list" }
func (Map) kind() string           { return "map" }
func (*Node) kind() string         { return "node" }
func (*Relationship) kind() string { return "relationship" }
func (*Path) kind() string         { return "path" }
func (o Opaque) kind() string      { return fmt.Sprintf("%T", o.Native) }

// Kind names the variant of v, for diagnostics.
func Kind(v Value) string {
	if v == nil {
		return "null"
	}
	return v.kind()
}

// IsNumber reports whether v is an Integer or a Float.
func IsNumber(v Value) bool {
	switch v.(type) {
	case Integer, Float:
		return true
	}
	return false
}

// IsText reports whether v is a String or Bytes value.
func IsText(v Value) bool {
	switch v.(type) {
	case String, Bytes:
		return true
	}
	return false
}

// IsNull reports whether v is absent.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Start returns the first node of the path, or nil for an empty path.
func (p *Path) Start() *Node {
	if len(p.Nodes) == 0 {
		return nil
	}
	return p.Nodes[0]
}

// SameNode reports whether a and b refer to the same graph node.
func SameNode(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	return a.ID != "" && a.ID == b.ID
}
