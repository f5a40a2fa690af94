package cypher

import (
	"bytes"
	"sort"
	"strings"
	"text/template"
)

// entityView is the data handed to node and relationship templates. The
// first encoding failure is remembered so that it reaches the caller
// unchanged instead of wrapped in template execution errors.
type entityView struct {
	encoder    *Encoder
	labels     []string
	properties Map
	relType    string
	err        error
}

func (v *entityView) fail(err error) (string, error) {
	if v.err == nil {
		v.err = err
	}
	return "", err
}

// Labels renders the label set in sorted order, each prefixed by a colon.
func (v *entityView) Labels() (string, error) {
	labels := append([]string(nil), v.labels...)
	sort.Strings(labels)

	var b strings.Builder
	for _, label := range labels {
		s, err := v.encoder.EncodeKey(label)
		if err != nil {
			return v.fail(err)
		}
		b.WriteString(":")
		b.WriteString(s)
	}
	return b.String(), nil
}

// Properties renders the property map exactly as a Map value, so an entity
// without properties shows "{}".
func (v *entityView) Properties() (string, error) {
	s, err := v.encoder.encodeMap(v.properties)
	if err != nil {
		return v.fail(err)
	}
	return s, nil
}

// Property renders a single property for display. Missing keys render
// nothing.
func (v *entityView) Property(key string) (string, error) {
	value, ok := v.properties[key]
	if !ok {
		return "", nil
	}
	s, err := v.encoder.EncodeDisplay(value)
	if err != nil {
		return v.fail(err)
	}
	return s, nil
}

// Type renders the relationship type as ":TYPE".
func (v *entityView) Type() (string, error) {
	s, err := v.encoder.EncodeKey(v.relType)
	if err != nil {
		return v.fail(err)
	}
	return ":" + s, nil
}

func (v *entityView) execute(tmpl *template.Template) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, v)
	if v.err != nil {
		return "", v.err
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
