package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/technige/n4/internal/cypher"
)

// SeparatedWriter prints each record as soon as it arrives, with fields
// joined by a single separator character.
type SeparatedWriter struct {
	summaryWriter
	out       io.Writer
	enc       *cypher.Encoder
	quoted    *cypher.Encoder
	separator string
	header    bool
	keys      []string
	field     func(w *SeparatedWriter, v cypher.Value) (string, error)
	heading   func(key string) string
}

func newCSVWriter(f Format, enc *cypher.Encoder, out, status io.Writer) (*SeparatedWriter, error) {
	quoted, err := enc.WithQuote(cypher.QuoteDouble)
	if err != nil {
		return nil, err
	}
	return &SeparatedWriter{
		summaryWriter: newSummaryWriter(status),
		out:           out,
		enc:           enc,
		quoted:        quoted,
		separator:     ",",
		header:        f.Header,
		field:         csvField,
		heading:       csvEscape,
	}, nil
}

func newTSVWriter(f Format, enc *cypher.Encoder, out, status io.Writer) (*SeparatedWriter, error) {
	quoted, err := enc.WithQuote(cypher.QuoteDouble)
	if err != nil {
		return nil, err
	}
	return &SeparatedWriter{
		summaryWriter: newSummaryWriter(status),
		out:           out,
		enc:           enc,
		quoted:        quoted,
		separator:     "\t",
		header:        f.Header,
		field:         tsvField,
		heading:       func(key string) string { return key },
	}, nil
}

const csvSpecials = ",\"\r\n"

func csvEscape(s string) string {
	if !strings.ContainsAny(s, csvSpecials) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// csvField quotes text containing separators the CSV way and renders every
// other value as a double-quoted literal. A literal that itself contains a
// separator, such as a list, is CSV-quoted as a whole.
func csvField(w *SeparatedWriter, v cypher.Value) (string, error) {
	enc := w.quoted
	if cypher.IsText(v) {
		text, err := enc.EncodeDisplay(v)
		if err != nil {
			return "", err
		}
		if strings.ContainsAny(text, csvSpecials) {
			return csvEscape(text), nil
		}
	}
	literal, err := enc.EncodeValue(v)
	if err != nil {
		return "", err
	}
	if !cypher.IsText(v) {
		return csvEscape(literal), nil
	}
	return literal, nil
}

// tsvField renders text as a double-quoted literal and every other value as
// a plain literal.
func tsvField(w *SeparatedWriter, v cypher.Value) (string, error) {
	if cypher.IsText(v) {
		return w.quoted.EncodeValue(v)
	}
	return w.enc.EncodeValue(v)
}

func (w *SeparatedWriter) WriteHeader(keys []string) error {
	w.keys = keys
	if !w.header {
		return nil
	}
	fields := make([]string, len(keys))
	for i, key := range keys {
		fields[i] = w.heading(key)
	}
	_, err := io.WriteString(w.out, strings.Join(fields, w.separator)+lineEnd)
	return err
}

// WriteRecord prints the record immediately and reports true.
func (w *SeparatedWriter) WriteRecord(values []cypher.Value) (bool, error) {
	fields := make([]string, len(values))
	for i, v := range values {
		s, err := w.field(w, v)
		if err != nil {
			return false, &EncodingError{Column: w.column(i), Err: err}
		}
		fields[i] = s
	}
	if _, err := io.WriteString(w.out, strings.Join(fields, w.separator)+lineEnd); err != nil {
		return false, fmt.Errorf("write record: %w", err)
	}
	return true, nil
}

func (w *SeparatedWriter) column(i int) string {
	if i < len(w.keys) {
		return w.keys[i]
	}
	return ""
}

func (w *SeparatedWriter) Flush() error {
	return nil
}
