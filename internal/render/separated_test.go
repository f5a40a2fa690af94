package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technige/n4/internal/cypher"
)

func TestCSV_Fields(t *testing.T) {
	testCases := []struct {
		name  string
		value cypher.Value
		want  string
	}{
		{name: "text with separators", value: cypher.String(`a,b"c`), want: `"a,b""c"`},
		{name: "text with newline", value: cypher.String("a\nb"), want: "\"a\nb\""},
		{name: "plain text", value: cypher.String("plain"), want: `"plain"`},
		{name: "text with single quote", value: cypher.String("it's"), want: `"it's"`},
		{name: "integer", value: cypher.Integer(42), want: "42"},
		{name: "float", value: cypher.Float(1), want: "1.0"},
		{name: "null", value: cypher.Null{}, want: "null"},
		{name: "boolean", value: cypher.Boolean(false), want: "false"},
		{name: "list", value: cypher.List{cypher.Integer(1), cypher.Integer(2)}, want: `"[1, 2]"`},
		{name: "list of text", value: cypher.List{cypher.String("x")}, want: `"[""x""]"`},
		{name: "empty map", value: cypher.Map{}, want: "{}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			w, err := New(DefaultFormat(CSV), newEncoder(t), &out, &bytes.Buffer{})
			require.NoError(t, err)

			written, err := w.WriteRecord([]cypher.Value{tc.value})

			require.NoError(t, err)
			assert.True(t, written)
			assert.Equal(t, tc.want+"\r\n", out.String())
		})
	}
}

func TestCSV_HeaderAndRows(t *testing.T) {
	var out bytes.Buffer
	w, err := New(DefaultFormat(CSV), newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"name", "a,b"}))
	_, err = w.WriteRecord([]cypher.Value{cypher.String("Alice"), cypher.Integer(33)})
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	assert.Equal(t, "name,\"a,b\"\r\n\"Alice\",33\r\n", out.String())
}

// TestTSV_Fields checks text is always a double-quoted literal while other
// values, including text nested in a list, keep the plain literal form.
func TestTSV_Fields(t *testing.T) {
	var out bytes.Buffer
	w, err := New(DefaultFormat(TSV), newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"s", "n", "l", "q"}))
	written, err := w.WriteRecord([]cypher.Value{
		cypher.String("x\ty"),
		cypher.Integer(-1),
		cypher.List{cypher.String("it's")},
		cypher.List{cypher.String(`say "hi"`)},
	})

	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "s\tn\tl\tq\r\n\"x\\ty\"\t-1\t[\"it's\"]\t['say \"hi\"']\r\n", out.String())
}

func TestSeparated_HeaderOff(t *testing.T) {
	var out bytes.Buffer
	f := DefaultFormat(TSV)
	f.Header = false
	w, err := New(f, newEncoder(t), &out, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, w.WriteHeader([]string{"n"}))
	_, err = w.WriteRecord([]cypher.Value{cypher.Integer(1)})
	require.NoError(t, err)

	assert.Equal(t, "1\r\n", out.String())
}

func TestSeparated_EncodingError(t *testing.T) {
	w, err := New(DefaultFormat(CSV), newEncoder(t), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"m"}))

	_, err = w.WriteRecord([]cypher.Value{cypher.Map{"": cypher.Integer(1)}})

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "m", encErr.Column)
	var empty *cypher.EmptyIdentifierError
	assert.ErrorAs(t, err, &empty)
}
