package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver/drivertest"
)

func newEncoder(t *testing.T) *cypher.Encoder {
	t.Helper()
	enc, err := cypher.NewEncoder(cypher.DefaultConfig())
	require.NoError(t, err)
	return enc
}

func lines(s ...string) string {
	return strings.Join(s, "\r\n") + "\r\n"
}

// TestTable_AlignsNumbersAndBlanksNulls checks numeric cells are right-aligned,
// null cells are blank and every cell is padded to the widest in its column.
func TestTable_AlignsNumbersAndBlanksNulls(t *testing.T) {
	// --- Arrange ---
	var out, status bytes.Buffer
	w, err := New(DefaultFormat(Table), newEncoder(t), &out, &status)
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, w.WriteHeader([]string{"name", "n"}))
	for _, row := range [][]cypher.Value{
		{cypher.String("Alice"), cypher.Integer(3)},
		{cypher.String("Bob"), cypher.Integer(-12)},
		{cypher.String("Carol"), cypher.Null{}},
	} {
		written, err := w.WriteRecord(row)
		require.NoError(t, err)
		assert.False(t, written, "table rows are held until the page is flushed")
	}
	assert.Empty(t, out.String())
	require.NoError(t, w.Flush())

	// --- Assert ---
	want := lines(
		" name    | n",
		"---------|-----",
		" 'Alice' |   3",
		" 'Bob'   | -12",
		" 'Carol' |",
		"",
	)
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_HeaderWiderThanValues(t *testing.T) {
	var out bytes.Buffer
	f := DefaultFormat(Table)
	f.BlankLines = 0
	w, err := New(f, newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"count"}))
	_, err = w.WriteRecord([]cypher.Value{cypher.Integer(7)})
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	assert.Equal(t, lines(" count", "-------", "     7"), out.String())
}

func TestTable_WithoutHeader(t *testing.T) {
	var out bytes.Buffer
	f := DefaultFormat(Table)
	f.Header = false
	f.BlankLines = 2
	w, err := New(f, newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"a_very_long_column"}))
	_, err = w.WriteRecord([]cypher.Value{cypher.Boolean(true)})
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	assert.Equal(t, lines(" true", "", ""), out.String())
}

func TestTable_ListLiteral(t *testing.T) {
	var out bytes.Buffer
	f := DefaultFormat(Table)
	f.BlankLines = 0
	w, err := New(f, newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"k", "v"}))
	_, err = w.WriteRecord([]cypher.Value{cypher.List{cypher.Integer(1)}, cypher.Integer(1)})
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	assert.Equal(t, lines(" k   | v", "-----|---", " [1] | 1"), out.String())
}

func TestTable_EmptyFlushPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	w, err := New(DefaultFormat(Table), newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"x"}))
	require.NoError(t, w.Flush())

	assert.Empty(t, out.String())
}

func TestTable_UnsupportedValueIsEncodingError(t *testing.T) {
	w, err := New(DefaultFormat(Table), newEncoder(t), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"when"}))

	_, err = w.WriteRecord([]cypher.Value{cypher.Opaque{Native: struct{}{}}})

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "when", encErr.Column)
	var unsupported *cypher.UnsupportedValueError
	assert.ErrorAs(t, err, &unsupported)
}

func TestKeyValueTable(t *testing.T) {
	var out bytes.Buffer
	table := NewKeyValueTable(newEncoder(t), &out, "name", "value")

	for _, row := range [][]cypher.Value{
		{cypher.String("dbms.memory.heap"), cypher.String("512m")},
		{cypher.String("dbms.mode"), cypher.Integer(1)},
		{cypher.String("dbms.note"), cypher.String("first\nsecond")},
		{cypher.String("名前"), cypher.String("wide")},
	} {
		_, err := table.WriteRecord(row)
		require.NoError(t, err)
	}
	require.NoError(t, table.Flush())

	want := lines(
		"dbms.memory.heap = 512m",
		"dbms.mode        = 1",
		"dbms.note        = first",
		"                 = second",
		"名前             = wide",
	)
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("key/value table mismatch (-want +got):\n%s", diff)
	}
}

// TestKeyValueTable_BlanksNulls checks a null value prints as an empty cell
// even though key/value tables do no numeric alignment.
func TestKeyValueTable_BlanksNulls(t *testing.T) {
	var out bytes.Buffer
	table := NewKeyValueTable(newEncoder(t), &out, "name", "value")

	_, err := table.WriteRecord([]cypher.Value{cypher.String("dbms.mode"), cypher.Null{}})
	require.NoError(t, err)
	_, err = table.WriteRecord([]cypher.Value{cypher.String("dbms.id"), cypher.Integer(7)})
	require.NoError(t, err)
	require.NoError(t, table.Flush())

	want := lines(
		"dbms.mode =",
		"dbms.id   = 7",
	)
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("key/value table mismatch (-want +got):\n%s", diff)
	}
}

// TestWriteResult_Paginates checks a 120 row result at page size 50 takes
// three pages of 50, 50 and 20 rows, with lookahead reporting more rows only
// after the first two.
func TestWriteResult_Paginates(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	d := drivertest.New(drivertest.Static(drivertest.Range("n", 120)))
	s, err := d.NewSession(ctx)
	require.NoError(t, err)
	result, err := s.Run(ctx, "UNWIND range(1, 120) AS n RETURN n", nil)
	require.NoError(t, err)
	fake := d.LastResult()

	var out bytes.Buffer
	w, err := New(DefaultFormat(Table), newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"n"}))

	// --- Act ---
	var pages []int
	var more []bool
	for result.Peek(ctx) {
		n, err := WritePage(ctx, w, result, 50)
		require.NoError(t, err)
		pages = append(pages, n)
		more = append(more, result.Peek(ctx))
	}

	// --- Assert ---
	assert.Equal(t, []int{50, 50, 20}, pages)
	assert.Equal(t, []bool{true, true, false}, more)
	assert.Equal(t, 120, fake.Consumed)
	assert.Equal(t, 3, strings.Count(out.String(), " n\r\n"), "every page repeats the header")
}

func TestWriteResult_ReturnsTotal(t *testing.T) {
	ctx := context.Background()
	d := drivertest.New(drivertest.Static(drivertest.Range("n", 7)))
	s, err := d.NewSession(ctx)
	require.NoError(t, err)
	result, err := s.Run(ctx, "RETURN 1", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	w, err := New(Format{Kind: CSV, Header: true, PageSize: 3, BlankLines: 0}, newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	n, err := WriteResult(ctx, w, result, 3)

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, lines("n", "1", "2", "3", "4", "5", "6", "7"), out.String())
}

func TestWriteResult_NoColumnsWritesNothing(t *testing.T) {
	ctx := context.Background()
	d := drivertest.New(nil)
	s, err := d.NewSession(ctx)
	require.NoError(t, err)
	result, err := s.Run(ctx, "CREATE ()", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	w, err := New(DefaultFormat(Table), newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	n, err := WriteResult(ctx, w, result, 50)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}
