package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/technige/n4/internal/cypher"
)

const lineEnd = "\r\n"

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

type cell struct {
	lines []string
	align alignment
}

func newCell(text string, align alignment) cell {
	return cell{lines: strings.Split(text, "\n"), align: align}
}

func (c cell) width() int {
	w := 0
	for _, line := range c.lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}

// TableWriter buffers one page of rows, sizes every column to its widest
// cell and prints the page when flushed.
type TableWriter struct {
	summaryWriter
	out        io.Writer
	encode     func(cypher.Value) (string, error)
	keys       []string
	header     bool
	padding    int
	separator  string
	autoAlign  bool
	blankLines int
	rows       [][]cell
}

func newTableWriter(f Format, enc *cypher.Encoder, out, status io.Writer) *TableWriter {
	return &TableWriter{
		summaryWriter: newSummaryWriter(status),
		out:           out,
		encode:        enc.EncodeValue,
		header:        f.Header,
		padding:       1,
		separator:     "|",
		autoAlign:     true,
		blankLines:    f.BlankLines,
	}
}

// NewKeyValueTable returns a table printing "name = value" lines with no
// header and no numeric alignment. Text values are shown verbatim and null
// values are left blank.
func NewKeyValueTable(enc *cypher.Encoder, out io.Writer, keys ...string) *TableWriter {
	return &TableWriter{
		summaryWriter: newSummaryWriter(io.Discard),
		out:           out,
		encode:        enc.EncodeDisplay,
		keys:          keys,
		separator:     " = ",
	}
}

func (t *TableWriter) WriteHeader(keys []string) error {
	t.keys = keys
	t.rows = t.rows[:0]
	return nil
}

// WriteRecord encodes values into the current page. Nothing is printed until
// Flush, so it always reports false.
func (t *TableWriter) WriteRecord(values []cypher.Value) (bool, error) {
	row := make([]cell, len(t.keys))
	for i := range row {
		var v cypher.Value
		if i < len(values) {
			v = values[i]
		}
		c, err := t.cellFor(v)
		if err != nil {
			return false, &EncodingError{Column: t.keys[i], Err: err}
		}
		row[i] = c
	}
	t.rows = append(t.rows, row)
	return false, nil
}

func (t *TableWriter) cellFor(v cypher.Value) (cell, error) {
	if cypher.IsNull(v) {
		return newCell("", alignLeft), nil
	}
	text, err := t.encode(v)
	if err != nil {
		return cell{}, err
	}
	if t.autoAlign && cypher.IsNumber(v) {
		return newCell(text, alignRight), nil
	}
	return newCell(text, alignLeft), nil
}

// Flush prints the buffered page followed by the configured number of blank
// lines. An empty page prints nothing.
func (t *TableWriter) Flush() error {
	if len(t.rows) == 0 {
		return nil
	}
	widths := t.widths()
	var b strings.Builder
	if t.header {
		heading := make([]cell, len(t.keys))
		rule := make([]string, len(t.keys))
		for i, key := range t.keys {
			heading[i] = newCell(key, alignLeft)
			rule[i] = strings.Repeat("-", widths[i]+2*t.padding)
		}
		t.writeRow(&b, heading, widths)
		b.WriteString(strings.Join(rule, t.separator))
		b.WriteString(lineEnd)
	}
	for _, row := range t.rows {
		t.writeRow(&b, row, widths)
	}
	for i := 0; i < t.blankLines; i++ {
		b.WriteString(lineEnd)
	}
	t.rows = t.rows[:0]
	_, err := io.WriteString(t.out, b.String())
	return err
}

func (t *TableWriter) widths() []int {
	widths := make([]int, len(t.keys))
	if t.header {
		for i, key := range t.keys {
			widths[i] = runewidth.StringWidth(key)
		}
	}
	for _, row := range t.rows {
		for i, c := range row {
			widths[i] = max(widths[i], c.width())
		}
	}
	return widths
}

func (t *TableWriter) writeRow(b *strings.Builder, row []cell, widths []int) {
	height := 1
	for _, c := range row {
		height = max(height, len(c.lines))
	}
	pad := strings.Repeat(" ", t.padding)
	for line := 0; line < height; line++ {
		var l strings.Builder
		for i, c := range row {
			if i > 0 {
				l.WriteString(t.separator)
			}
			text := ""
			if line < len(c.lines) {
				text = c.lines[line]
			}
			fill := strings.Repeat(" ", widths[i]-runewidth.StringWidth(text))
			if c.align == alignRight {
				l.WriteString(pad + fill + text + pad)
			} else {
				l.WriteString(pad + text + fill + pad)
			}
		}
		b.WriteString(strings.TrimRight(l.String(), " "))
		b.WriteString(lineEnd)
	}
}
