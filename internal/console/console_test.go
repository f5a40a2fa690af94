package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver"
	"github.com/technige/n4/internal/driver/drivertest"
	"github.com/technige/n4/internal/render"
	"github.com/technige/n4/internal/session"
)

type harness struct {
	driver  *drivertest.Driver
	session *session.Session
	console *Console
	out     *bytes.Buffer
	status  *bytes.Buffer
}

func newHarness(t *testing.T, input string, h drivertest.Handler) *harness {
	t.Helper()
	d := drivertest.New(h)
	var out, status bytes.Buffer
	s := session.New(d, session.Options{
		Out:    &out,
		Status: &status,
		Now:    func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) },
	})
	c := New(s, Options{In: strings.NewReader(input), Out: &out, Status: &status, URI: "bolt://db:7687", Version: "test"})
	c.Dispatcher().SetLocation(time.UTC)
	return &harness{driver: d, session: s, console: c, out: &out, status: &status}
}

func TestLoop_EndOfInputExitsZero(t *testing.T) {
	h := newHarness(t, "RETURN 1\n", drivertest.Static(drivertest.Range("n", 1)))

	code := h.console.Loop(context.Background())

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{drivertest.OpOpen, drivertest.OpRun, drivertest.OpClose}, h.driver.Ops())
	assert.Contains(t, h.status.String(), "(1 record from localhost:7687 in 0.000s)")
}

// TestLoop_ExitRollsBackOpenTransaction checks that leaving the loop with a
// transaction still open rolls it back before returning.
func TestLoop_ExitRollsBackOpenTransaction(t *testing.T) {
	// --- Arrange ---
	h := newHarness(t, "BEGIN\nCREATE ()\n/x\nRETURN 'never'\n", nil)

	// --- Act ---
	code := h.console.Loop(context.Background())

	// --- Assert ---
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{
		drivertest.OpOpen, drivertest.OpBegin, drivertest.OpTxRun,
		drivertest.OpRollback, drivertest.OpClose,
	}, h.driver.Ops())
	assert.Equal(t, session.Idle, h.session.State())
}

func TestLoop_ConnectionErrorExitsOne(t *testing.T) {
	h := newHarness(t, "RETURN 1\nRETURN 2\n", drivertest.Static(drivertest.Response{
		Err: &driver.ConnectionError{Err: errors.New("connection refused")},
	}))

	code := h.console.Loop(context.Background())

	assert.Equal(t, 1, code)
	assert.Contains(t, h.status.String(), "service unavailable: connection refused")
	assert.Len(t, h.driver.Calls, 3, "the second statement is never run")
}

func TestLoop_ReportsErrorsAndContinues(t *testing.T) {
	// --- Arrange ---
	input := strings.Join([]string{
		"RETRUN 1",
		"/nope",
		"/csv header=maybe",
		"COMMIT",
		"RETURN 1",
		"",
	}, "\n")
	h := newHarness(t, input, func(statement string, _ map[string]any) drivertest.Response {
		if statement == "RETRUN 1" {
			return drivertest.Response{Err: driver.NewStatementError("Neo.ClientError.Statement.SyntaxError", "Invalid input 'T'")}
		}
		return drivertest.Range("n", 1)
	})

	// --- Act ---
	code := h.console.Loop(context.Background())

	// --- Assert ---
	assert.Equal(t, 0, code)
	status := h.status.String()
	assert.Contains(t, status, "SyntaxError: Invalid input 'T'\n")
	assert.Contains(t, status, "Unknown command: /nope\n")
	assert.Contains(t, status, `/csv: option header="maybe" is not valid`)
	assert.Contains(t, status, "No current transaction\n")
	assert.Contains(t, status, "(1 record from localhost:7687 in 0.000s)")
}

func TestLoop_MultilineCollectsUntilBlankLine(t *testing.T) {
	h := newHarness(t, "//\nMATCH (n)\nRETURN n\n\nRETURN 2\n", nil)

	code := h.console.Loop(context.Background())

	assert.Equal(t, 0, code)
	var statements []string
	for _, call := range h.driver.Calls {
		if call.Op == drivertest.OpRun {
			statements = append(statements, call.Statement)
		}
	}
	assert.Equal(t, []string{"MATCH (n)\nRETURN n", "RETURN 2"}, statements)
}

func TestLoop_InteractivePromptAndBanner(t *testing.T) {
	d := drivertest.New(nil)
	var out, status bytes.Buffer
	s := session.New(d, session.Options{Out: &out, Status: &status})
	c := New(s, Options{
		In:          strings.NewReader("BEGIN\nCREATE ()\n"),
		Out:         &out,
		Status:      &status,
		Interactive: true,
		URI:         "bolt://db:7687",
		Version:     "1.2.3",
	})

	code := c.Loop(context.Background())

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(status.String(), "N4 v1.2.3 -- Console for Neo4j\nConnected to bolt://db:7687\n"))
	assert.Equal(t, "\n-> \n-(1)-> \n-(2)-> \n", out.String())
}

// promptWriter records console output and announces every prompt, so a
// test can tell when the loop is blocked reading the next line.
type promptWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	prompts chan string
}

func (w *promptWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.buf.Write(p)
	w.mu.Unlock()
	if strings.HasSuffix(string(p), "-> ") {
		w.prompts <- strings.TrimPrefix(string(p), "\n")
	}
	return len(p), nil
}

func (w *promptWriter) next(t *testing.T) string {
	t.Helper()
	select {
	case p := <-w.prompts:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the prompt")
		return ""
	}
}

// TestLoop_InterruptKeepsOpenTransaction checks Ctrl-C while the console
// waits for input abandons only that read: the open transaction and its
// counter survive and later statements still run inside it.
func TestLoop_InterruptKeepsOpenTransaction(t *testing.T) {
	// --- Arrange ---
	in, input := io.Pipe()
	interrupts := make(chan os.Signal, 1)
	out := &promptWriter{prompts: make(chan string, 16)}
	var status bytes.Buffer
	d := drivertest.New(nil)
	s := session.New(d, session.Options{Out: out, Status: &status})
	c := New(s, Options{In: in, Out: out, Status: &status, Interactive: true, Interrupts: interrupts})

	done := make(chan int, 1)
	go func() { done <- c.Loop(context.Background()) }()

	// --- Act ---
	assert.Equal(t, "-> ", out.next(t))
	_, err := io.WriteString(input, "BEGIN\n")
	require.NoError(t, err)
	assert.Equal(t, "-(1)-> ", out.next(t))

	interrupts <- syscall.SIGINT
	assert.Equal(t, "-(1)-> ", out.next(t))
	stateAfterInterrupt := s.State()

	_, err = io.WriteString(input, "CREATE ()\n")
	require.NoError(t, err)
	assert.Equal(t, "-(2)-> ", out.next(t))
	_, err = io.WriteString(input, "COMMIT\n")
	require.NoError(t, err)
	assert.Equal(t, "-> ", out.next(t))
	require.NoError(t, input.Close())

	var code int
	select {
	case code = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not finish")
	}

	// --- Assert ---
	assert.Equal(t, 0, code)
	assert.Equal(t, session.Open(1), stateAfterInterrupt)
	assert.Equal(t, []string{
		drivertest.OpOpen, drivertest.OpBegin, drivertest.OpTxRun,
		drivertest.OpCommit, drivertest.OpClose,
	}, d.Ops())
	assert.Equal(t, session.Idle, s.State())
}

func TestRunStatements(t *testing.T) {
	h := newHarness(t, "", func(statement string, _ map[string]any) drivertest.Response {
		if statement == "bad" {
			return drivertest.Response{Err: driver.NewStatementError("Neo.DatabaseError.General.UnknownError", "oops")}
		}
		return drivertest.Range("n", 1)
	})

	code := h.console.RunStatements(context.Background(), []string{"RETURN 1", "bad", "RETURN 2"})

	assert.Equal(t, 0, code)
	assert.Len(t, h.driver.Results, 2)
	assert.Contains(t, h.status.String(), "UnknownError: oops\n")
}

func TestLineReader_Interrupt(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	interrupts := make(chan os.Signal, 1)
	interrupts <- syscall.SIGINT
	r := NewLineReader(in, interrupts)

	_, err := r.ReadLine(context.Background())

	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestLineReader_Cancelled(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()
	r := NewLineReader(in, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ReadLine(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineReader_Lines(t *testing.T) {
	r := NewLineReader(strings.NewReader("one\r\ntwo\nthree"), nil)
	ctx := context.Background()

	var got []string
	for {
		text, err := r.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, text)
	}

	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestLineReader_BlockEndsAtEOF(t *testing.T) {
	r := NewLineReader(strings.NewReader("a\nb"), nil)
	ctx := context.Background()

	block, err := r.ReadBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", block)

	_, err = r.ReadBlock(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_EncodingErrorReported(t *testing.T) {
	h := newHarness(t, "", drivertest.Static(drivertest.Rows(
		[]string{"p"},
		[]cypher.Value{cypher.Opaque{Native: struct{ X, Y float64 }{}}},
	)))

	code := h.console.RunStatements(context.Background(), []string{"RETURN point({x: 0, y: 0}) AS p"})

	assert.Equal(t, 0, code)
	assert.Contains(t, h.status.String(), "Encoding error: cypher: values of type struct { X float64; Y float64 } are not supported")
	assert.Equal(t, render.Table, h.session.Format().Kind)
}
