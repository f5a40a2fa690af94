package cypher

import (
	"fmt"
)

// Quote preferences accepted by Config.Quote.
const (
	QuoteAuto   = "auto"
	QuoteSingle = "'"
	QuoteDouble = `"`
)

// Default template and separator values.
const (
	DefaultEncoding             = "utf-8"
	DefaultSequenceSeparator    = ", "
	DefaultKeyValueSeparator    = ": "
	DefaultNodeTemplate         = "{{.Labels}} {{.Properties}}"
	DefaultRelatedNodeTemplate  = `{{.Property "name"}}`
	DefaultRelationshipTemplate = "{{.Type}} {{.Properties}}"
)

// Config controls how values are rendered. It is a plain value: an Encoder
// copies it on construction and never changes it afterwards.
//
// The three templates are text/template sources. Node templates can use
// {{.Labels}}, {{.Properties}} and {{.Property "key"}}; the relationship
// template can use {{.Type}}, {{.Properties}} and {{.Property "key"}}.
type Config struct {
	Encoding             string
	Quote                string
	SequenceSeparator    string
	KeyValueSeparator    string
	NodeTemplate         string
	RelatedNodeTemplate  string
	RelationshipTemplate string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Encoding:             DefaultEncoding,
		Quote:                QuoteAuto,
		SequenceSeparator:    DefaultSequenceSeparator,
		KeyValueSeparator:    DefaultKeyValueSeparator,
		NodeTemplate:         DefaultNodeTemplate,
		RelatedNodeTemplate:  DefaultRelatedNodeTemplate,
		RelationshipTemplate: DefaultRelationshipTemplate,
	}
}

// withDefaults fills every empty field from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Encoding == "" {
		c.Encoding = d.Encoding
	}
	if c.Quote == "" {
		c.Quote = d.Quote
	}
	if c.SequenceSeparator == "" {
		c.SequenceSeparator = d.SequenceSeparator
	}
	if c.KeyValueSeparator == "" {
		c.KeyValueSeparator = d.KeyValueSeparator
	}
	if c.NodeTemplate == "" {
		c.NodeTemplate = d.NodeTemplate
	}
	if c.RelatedNodeTemplate == "" {
		c.RelatedNodeTemplate = d.RelatedNodeTemplate
	}
	if c.RelationshipTemplate == "" {
		c.RelationshipTemplate = d.RelationshipTemplate
	}
	return c
}

// ValidQuote reports whether q is an accepted quote preference.
func ValidQuote(q string) bool {
	switch q {
	case "", QuoteAuto, QuoteSingle, QuoteDouble:
		return true
	}
	return false
}

func (c Config) validate() error {
	if !ValidQuote(c.Quote) {
		return fmt.Errorf("cypher: unsupported quote character %q", c.Quote)
	}
	return nil
}
