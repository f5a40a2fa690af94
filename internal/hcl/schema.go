package hcl

import "github.com/technige/n4/internal/config"

// fileRoot is the top-level structure of a configuration file.
type fileRoot struct {
	Connection *connectionBlock `hcl:"connection,block"`
	Output     *outputBlock     `hcl:"output,block"`
	Encoder    *encoderBlock    `hcl:"encoder,block"`
	Log        *logBlock        `hcl:"log,block"`
}

type connectionBlock struct {
	URI      *string `hcl:"uri,optional"`
	User     *string `hcl:"user,optional"`
	Password *string `hcl:"password,optional"`
	Secure   *bool   `hcl:"secure,optional"`
}

type outputBlock struct {
	Format     *string `hcl:"format,optional"`
	Header     *bool   `hcl:"header,optional"`
	PageSize   *int    `hcl:"page_size,optional"`
	BlankLines *int    `hcl:"blank_lines,optional"`
}

type encoderBlock struct {
	Quote                *string `hcl:"quote,optional"`
	Encoding             *string `hcl:"encoding,optional"`
	SequenceSeparator    *string `hcl:"sequence_separator,optional"`
	KeyValueSeparator    *string `hcl:"key_value_separator,optional"`
	NodeTemplate         *string `hcl:"node_template,optional"`
	RelatedNodeTemplate  *string `hcl:"related_node_template,optional"`
	RelationshipTemplate *string `hcl:"relationship_template,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// applyTo copies every attribute present in the file onto m.
func (r *fileRoot) applyTo(m *config.Model) {
	if c := r.Connection; c != nil {
		set(&m.Connection.URI, c.URI)
		set(&m.Connection.User, c.User)
		set(&m.Connection.Password, c.Password)
		set(&m.Connection.Secure, c.Secure)
	}
	if o := r.Output; o != nil {
		set(&m.Output.Format, o.Format)
		set(&m.Output.Header, o.Header)
		set(&m.Output.PageSize, o.PageSize)
		set(&m.Output.BlankLines, o.BlankLines)
	}
	if e := r.Encoder; e != nil {
		set(&m.Encoder.Quote, e.Quote)
		set(&m.Encoder.Encoding, e.Encoding)
		set(&m.Encoder.SequenceSeparator, e.SequenceSeparator)
		set(&m.Encoder.KeyValueSeparator, e.KeyValueSeparator)
		set(&m.Encoder.NodeTemplate, e.NodeTemplate)
		set(&m.Encoder.RelatedNodeTemplate, e.RelatedNodeTemplate)
		set(&m.Encoder.RelationshipTemplate, e.RelationshipTemplate)
	}
	if l := r.Log; l != nil {
		set(&m.Log.Level, l.Level)
		set(&m.Log.Format, l.Format)
	}
}
