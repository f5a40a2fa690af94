package config

import (
	"errors"
	"fmt"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/render"
)

// Model is the fully merged configuration.
type Model struct {
	Connection Connection
	Output     Output
	Encoder    Encoder
	Log        Log
}

// Connection describes how to reach the database.
type Connection struct {
	URI      string
	User     string
	Password string
	Secure   bool
}

// Output selects the initial result format.
type Output struct {
	Format     string
	Header     bool
	PageSize   int
	BlankLines int
}

// Encoder mirrors cypher.Config.
type Encoder struct {
	Quote                string
	Encoding             string
	SequenceSeparator    string
	KeyValueSeparator    string
	NodeTemplate         string
	RelatedNodeTemplate  string
	RelationshipTemplate string
}

// Log configures diagnostic logging.
type Log struct {
	Level  string
	Format string
}

// Defaults returns the built-in configuration.
func Defaults() *Model {
	enc := cypher.DefaultConfig()
	return &Model{
		Connection: Connection{
			URI:      "bolt://localhost:7687",
			User:     "neo4j",
			Password: "password",
		},
		Output: Output{
			Format:     render.Table.String(),
			Header:     true,
			PageSize:   render.DefaultPageSize,
			BlankLines: render.DefaultBlankLines,
		},
		Encoder: Encoder{
			Quote:                enc.Quote,
			Encoding:             enc.Encoding,
			SequenceSeparator:    enc.SequenceSeparator,
			KeyValueSeparator:    enc.KeyValueSeparator,
			NodeTemplate:         enc.NodeTemplate,
			RelatedNodeTemplate:  enc.RelatedNodeTemplate,
			RelationshipTemplate: enc.RelationshipTemplate,
		},
		Log: Log{Level: "warn", Format: "text"},
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvURI      = "NEO4J_URI"
	EnvUser     = "NEO4J_USER"
	EnvPassword = "NEO4J_PASSWORD"
)

// ApplyEnv overrides connection settings from the environment. lookup is
// usually os.LookupEnv.
func (m *Model) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvURI); ok && v != "" {
		m.Connection.URI = v
	}
	if v, ok := lookup(EnvUser); ok && v != "" {
		m.Connection.User = v
	}
	if v, ok := lookup(EnvPassword); ok {
		m.Connection.Password = v
	}
}

// EncoderConfig converts the encoder section for cypher.NewEncoder.
func (m *Model) EncoderConfig() cypher.Config {
	return cypher.Config{
		Encoding:             m.Encoder.Encoding,
		Quote:                m.Encoder.Quote,
		SequenceSeparator:    m.Encoder.SequenceSeparator,
		KeyValueSeparator:    m.Encoder.KeyValueSeparator,
		NodeTemplate:         m.Encoder.NodeTemplate,
		RelatedNodeTemplate:  m.Encoder.RelatedNodeTemplate,
		RelationshipTemplate: m.Encoder.RelationshipTemplate,
	}
}

// OutputFormat converts the output section into a render.Format.
func (m *Model) OutputFormat() (render.Format, error) {
	kind, err := render.ParseKind(m.Output.Format)
	if err != nil {
		return render.Format{}, err
	}
	return render.Format{
		Kind:       kind,
		Header:     m.Output.Header,
		PageSize:   m.Output.PageSize,
		BlankLines: m.Output.BlankLines,
	}, nil
}

// Validate reports every invalid setting at once.
func (m *Model) Validate() error {
	var errs []error
	if m.Connection.URI == "" {
		errs = append(errs, errors.New("connection: uri cannot be empty"))
	}
	if f, err := m.OutputFormat(); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	} else if err := f.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	}
	if !cypher.ValidQuote(m.Encoder.Quote) {
		errs = append(errs, fmt.Errorf("encoder: unsupported quote %q, expected auto, ' or \"", m.Encoder.Quote))
	}
	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log: invalid level %q, must be 'debug', 'info', 'warn', or 'error'", m.Log.Level))
	}
	switch m.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: invalid format %q, must be 'text' or 'json'", m.Log.Format))
	}
	return errors.Join(errs...)
}
