package render

import (
	"context"
	"fmt"
	"io"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver"
)

// Writer renders one result. WriteHeader is called once with the column
// names, then WriteRecord for each row. WriteRecord reports whether the row
// reached the output immediately; a false return means it is held until the
// next Flush.
type Writer interface {
	WriteHeader(keys []string) error
	WriteRecord(values []cypher.Value) (written bool, err error)
	Flush() error
	WriteSummary(s Summary) error
}

// New returns the Writer for f. Rows go to out; summary lines go to status.
func New(f Format, enc *cypher.Encoder, out, status io.Writer) (Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	switch f.Kind {
	case CSV:
		return newCSVWriter(f, enc, out, status)
	case TSV:
		return newTSVWriter(f, enc, out, status)
	default:
		return newTableWriter(f, enc, out, status), nil
	}
}

// WritePage consumes at most limit records from result, writes them and
// flushes. It returns the number of records consumed. Callers check
// result.Peek before each call.
func WritePage(ctx context.Context, w Writer, result driver.Result, limit int) (int, error) {
	n := 0
	for n < limit && result.Next(ctx) {
		n++
		if _, err := w.WriteRecord(result.Record().Values); err != nil {
			return n, err
		}
	}
	if err := result.Err(); err != nil {
		return n, err
	}
	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("flush page: %w", err)
	}
	return n, nil
}

// WriteResult writes the header and then every page of result, returning
// the total number of records. A result without columns writes nothing.
func WriteResult(ctx context.Context, w Writer, result driver.Result, pageSize int) (int, error) {
	keys, err := result.Keys()
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := w.WriteHeader(keys); err != nil {
		return 0, err
	}
	total := 0
	for result.Peek(ctx) {
		n, err := WritePage(ctx, w, result, pageSize)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, result.Err()
}
