package cypher

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Encoder converts Values into Cypher literal text. It is immutable once
// built and may be shared freely.
type Encoder struct {
	config       Config
	charset      encoding.Encoding
	node         *template.Template
	relatedNode  *template.Template
	relationship *template.Template
}

// NewEncoder validates cfg, fills unset fields with defaults and compiles
// the templates.
func NewEncoder(cfg Config) (*Encoder, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	charset, err := htmlindex.Get(cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("cypher: unknown character encoding %q: %w", cfg.Encoding, err)
	}

	e := &Encoder{config: cfg, charset: charset}
	if e.node, err = template.New("node").Parse(cfg.NodeTemplate); err != nil {
		return nil, fmt.Errorf("cypher: invalid node template: %w", err)
	}
	if e.relatedNode, err = template.New("related_node").Parse(cfg.RelatedNodeTemplate); err != nil {
		return nil, fmt.Errorf("cypher: invalid related node template: %w", err)
	}
	if e.relationship, err = template.New("relationship").Parse(cfg.RelationshipTemplate); err != nil {
		return nil, fmt.Errorf("cypher: invalid relationship template: %w", err)
	}
	return e, nil
}

// MustNewEncoder is like NewEncoder but panics on an invalid configuration.
func MustNewEncoder(cfg Config) *Encoder {
	e, err := NewEncoder(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Config returns a copy of the configuration the encoder was built from.
func (e *Encoder) Config() Config {
	return e.config
}

// WithQuote returns an encoder identical to e except for its quote
// preference. The receiver is not modified.
func (e *Encoder) WithQuote(quote string) (*Encoder, error) {
	if !ValidQuote(quote) {
		return nil, fmt.Errorf("cypher: unsupported quote character %q", quote)
	}
	if quote == e.config.Quote {
		return e, nil
	}
	derived := *e
	derived.config.Quote = quote
	return &derived, nil
}

// EncodeValue renders v as a Cypher literal.
func (e *Encoder) EncodeValue(v Value) (string, error) {
	switch v := v.(type) {
	case nil, Null:
		return "null", nil
	case Boolean:
		if v {
			return "true", nil
		}
		return "false", nil
	case Integer:
		return strconv.FormatInt(int64(v), 10), nil
	case Float:
		return formatFloat(float64(v)), nil
	case String:
		return e.EncodeString(string(v))
	case Bytes:
		s, err := e.decode(v)
		if err != nil {
			return "", err
		}
		return e.EncodeString(s)
	case List:
		return e.encodeList(v)
	case Map:
		return e.encodeMap(v)
	case *Node:
		return e.encodeNode(v, e.node)
	case *Relationship:
		return e.encodeRelationship(v)
	case *Path:
		return e.encodePath(v)
	case Opaque:
		return "", &UnsupportedValueError{Kind: v.kind()}
	default:
		return "", &UnsupportedValueError{Kind: fmt.Sprintf("%T", v)}
	}
}

// EncodeDisplay renders text values verbatim and everything else as a
// literal. It is meant for human-facing listings, not for round-tripping.
func (e *Encoder) EncodeDisplay(v Value) (string, error) {
	switch v := v.(type) {
	case String:
		return string(v), nil
	case Bytes:
		return e.decode(v)
	}
	return e.EncodeValue(v)
}

func (e *Encoder) decode(b Bytes) (string, error) {
	out, err := e.charset.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("cypher: cannot decode bytes as %s: %w", e.config.Encoding, err)
	}
	return string(out), nil
}

func (e *Encoder) encodeList(values List) (string, error) {
	parts := make([]string, len(values))
	for i, item := range values {
		s, err := e.EncodeValue(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, e.config.SequenceSeparator) + "]", nil
}

func (e *Encoder) encodeMap(values Map) (string, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		key, err := e.EncodeKey(k)
		if err != nil {
			return "", err
		}
		value, err := e.EncodeValue(values[k])
		if err != nil {
			return "", err
		}
		parts[i] = key + e.config.KeyValueSeparator + value
	}
	return "{" + strings.Join(parts, e.config.SequenceSeparator) + "}", nil
}

func (e *Encoder) encodeNode(n *Node, tmpl *template.Template) (string, error) {
	if n == nil {
		return "()", nil
	}
	view := &entityView{encoder: e, properties: n.Properties, labels: n.Labels}
	s, err := view.execute(tmpl)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (e *Encoder) encodeRelationshipDetail(r *Relationship) (string, error) {
	view := &entityView{encoder: e, properties: r.Properties, relType: r.Type}
	s, err := view.execute(e.relationship)
	if err != nil {
		return "", err
	}
	return "[" + s + "]", nil
}

func (e *Encoder) encodeRelationship(r *Relationship) (string, error) {
	start, err := e.encodeNode(r.Start, e.relatedNode)
	if err != nil {
		return "", err
	}
	detail, err := e.encodeRelationshipDetail(r)
	if err != nil {
		return "", err
	}
	end, err := e.encodeNode(r.End, e.relatedNode)
	if err != nil {
		return "", err
	}
	return start + "-" + detail + "->" + end, nil
}

// encodePath walks the path from its start node. Arrow direction comes from
// comparing each relationship's start node with the node last visited.
func (e *Encoder) encodePath(p *Path) (string, error) {
	last := p.Start()
	if last == nil {
		return "", nil
	}

	var b strings.Builder
	s, err := e.encodeNode(last, e.relatedNode)
	if err != nil {
		return "", err
	}
	b.WriteString(s)

	for i, r := range p.Relationships {
		detail, err := e.encodeRelationshipDetail(r)
		if err != nil {
			return "", err
		}

		var next *Node
		if SameNode(r.Start, last) {
			b.WriteString("-" + detail + "->")
			next = r.End
		} else {
			b.WriteString("<-" + detail + "-")
			next = r.Start
		}
		if next == nil && i+1 < len(p.Nodes) {
			next = p.Nodes[i+1]
		}
		last = next

		s, err := e.encodeNode(last, e.relatedNode)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// formatFloat writes f in plain decimal notation, switching to exponent
// notation only for very large or very small magnitudes. Integral values
// keep a trailing ".0" so they stay distinguishable from integers.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	var s string
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
