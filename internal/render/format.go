package render

import (
	"fmt"
	"strings"
)

// Kind selects an output format.
type Kind int

const (
	Table Kind = iota
	CSV
	TSV
)

func (k Kind) String() string {
	switch k {
	case Table:
		return "table"
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a format name to its Kind, ignoring case.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "table":
		return Table, nil
	case "csv":
		return CSV, nil
	case "tsv":
		return TSV, nil
	}
	return 0, fmt.Errorf("unknown output format %q, expected one of table, csv, tsv", name)
}

const (
	DefaultPageSize   = 50
	DefaultBlankLines = 1
)

// Format is the output format selected for a session. It is replaced
// wholesale when the user picks another format.
type Format struct {
	Kind   Kind
	Header bool
	// PageSize and BlankLines apply to tables only.
	PageSize   int
	BlankLines int
}

// DefaultFormat returns kind with a header, the default page size and one
// blank line between pages.
func DefaultFormat(kind Kind) Format {
	return Format{
		Kind:       kind,
		Header:     true,
		PageSize:   DefaultPageSize,
		BlankLines: DefaultBlankLines,
	}
}

// Validate reports the first invalid field.
func (f Format) Validate() error {
	switch f.Kind {
	case Table, CSV, TSV:
	default:
		return fmt.Errorf("unknown output format %s", f.Kind)
	}
	if f.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", f.PageSize)
	}
	if f.BlankLines < 0 {
		return fmt.Errorf("blank lines cannot be negative, got %d", f.BlankLines)
	}
	return nil
}
