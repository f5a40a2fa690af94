package bolt

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/technige/n4/internal/cypher"
)

// Values converts a record's values.
func Values(in []any) []cypher.Value {
	out := make([]cypher.Value, len(in))
	for i, v := range in {
		out[i] = Value(v)
	}
	return out
}

// Value converts a value produced by the Neo4j driver. Kinds without a
// cypher counterpart, such as temporal and spatial values, become
// cypher.Opaque.
func Value(v any) cypher.Value {
	switch v := v.(type) {
	case nil:
		return cypher.Null{}
	case bool:
		return cypher.Boolean(v)
	case int64:
		return cypher.Integer(v)
	case int:
		return cypher.Integer(v)
	case float64:
		return cypher.Float(v)
	case string:
		return cypher.String(v)
	case []byte:
		return cypher.Bytes(v)
	case []any:
		return cypher.List(Values(v))
	case map[string]any:
		return properties(v)
	case dbtype.Node:
		return node(v)
	case dbtype.Relationship:
		return relationship(v, nil)
	case dbtype.Path:
		return path(v)
	}
	return cypher.Opaque{Native: v}
}

func properties(props map[string]any) cypher.Map {
	m := make(cypher.Map, len(props))
	for k, v := range props {
		m[k] = Value(v)
	}
	return m
}

func node(n dbtype.Node) *cypher.Node {
	return &cypher.Node{ID: n.ElementId, Labels: n.Labels, Properties: properties(n.Props)}
}

// relationship converts r, resolving its endpoints through nodes when they
// are known. Unknown endpoints carry only their identity.
func relationship(r dbtype.Relationship, nodes map[string]*cypher.Node) *cypher.Relationship {
	endpoint := func(id string) *cypher.Node {
		if n, ok := nodes[id]; ok {
			return n
		}
		return &cypher.Node{ID: id}
	}
	return &cypher.Relationship{
		ID:         r.ElementId,
		Type:       r.Type,
		Properties: properties(r.Props),
		Start:      endpoint(r.StartElementId),
		End:        endpoint(r.EndElementId),
	}
}

func path(p dbtype.Path) *cypher.Path {
	out := &cypher.Path{
		Nodes:         make([]*cypher.Node, len(p.Nodes)),
		Relationships: make([]*cypher.Relationship, len(p.Relationships)),
	}
	byID := make(map[string]*cypher.Node, len(p.Nodes))
	for i, n := range p.Nodes {
		out.Nodes[i] = node(n)
		byID[n.ElementId] = out.Nodes[i]
	}
	for i, r := range p.Relationships {
		out.Relationships[i] = relationship(r, byID)
	}
	return out
}
