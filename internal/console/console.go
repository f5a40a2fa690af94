package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/technige/n4/internal/ctxlog"
	"github.com/technige/n4/internal/driver"
	"github.com/technige/n4/internal/render"
	"github.com/technige/n4/internal/session"
)

// Options configures a Console.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Status io.Writer
	// Interactive enables the banner and the prompt.
	Interactive bool
	URI         string
	Version     string
	// Interrupts abort a pending read, usually fed by signal.Notify.
	Interrupts <-chan os.Signal
}

// Console is the read/execute loop.
type Console struct {
	session    *session.Session
	dispatcher *Dispatcher
	in         io.Reader
	interrupts <-chan os.Signal
	reader     *LineReader
	out        io.Writer
	status     io.Writer
	styles     render.Styles
	opts       Options
}

// New returns a console driving s.
func New(s *session.Session, opts Options) *Console {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Status == nil {
		opts.Status = io.Discard
	}
	return &Console{
		session:    s,
		dispatcher: NewDispatcher(s, s.Format(), opts.Out, opts.Status),
		in:         opts.In,
		interrupts: opts.Interrupts,
		out:        opts.Out,
		status:     opts.Status,
		styles:     render.NewStyles(opts.Status),
		opts:       opts,
	}
}

// Dispatcher returns the console's command dispatcher.
func (c *Console) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Execute handles one line: a command, a transaction keyword or a statement.
func (c *Console) Execute(ctx context.Context, line string) error {
	if session.Classify(line) == session.Command {
		return c.dispatcher.Dispatch(ctx, strings.TrimSpace(line))
	}
	return c.session.Execute(ctx, line)
}

// RunStatements executes each statement in order and returns the exit
// status. Only a lost connection stops the run early.
func (c *Console) RunStatements(ctx context.Context, statements []string) int {
	defer c.session.Close(ctx)
	for _, statement := range statements {
		if code, done := c.handle(ctx, statement); done {
			return code
		}
	}
	return 0
}

// Loop reads and executes lines until the input ends, the user exits or the
// connection is lost, and returns the exit status. An open transaction is
// rolled back on the way out.
func (c *Console) Loop(ctx context.Context) int {
	defer c.session.Close(ctx)
	if c.reader == nil {
		c.reader = NewLineReader(c.in, c.interrupts)
	}
	if c.opts.Interactive {
		c.banner()
	}
	logger := ctxlog.FromContext(ctx)
	for {
		line, err := c.read(ctx)
		switch {
		case errors.Is(err, ErrInterrupted):
			fmt.Fprintln(c.out)
			continue
		case errors.Is(err, io.EOF):
			if c.opts.Interactive {
				fmt.Fprintln(c.out)
			}
			return 0
		case errors.Is(err, context.Canceled):
			return 0
		case err != nil:
			logger.Error("Failed to read input.", "error", err)
			return 1
		}
		if code, done := c.handle(ctx, line); done {
			return code
		}
	}
}

func (c *Console) read(ctx context.Context) (string, error) {
	// Interrupts raised while a statement ran are not meant for this read.
	select {
	case <-c.interrupts:
	default:
	}
	if c.dispatcher.TakeMultiline() {
		return c.reader.ReadBlock(ctx)
	}
	if c.opts.Interactive {
		c.prompt()
	}
	return c.reader.ReadLine(ctx)
}

// handle runs line and reports whether the loop must stop, and with which
// status.
func (c *Console) handle(ctx context.Context, line string) (int, bool) {
	err := c.Execute(ctx, line)
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, ErrExit):
		return 0, true
	case driver.IsConnectionError(err):
		c.print(c.styles.Danger, err.Error())
		return 1, true
	}
	c.report(err)
	return 0, false
}

func (c *Console) report(err error) {
	var (
		txErr     *session.TransactionControlError
		stmtErr   *driver.StatementError
		unknown   *UnknownCommandError
		optErr    *OptionError
		encodeErr *render.EncodingError
	)
	switch {
	case errors.As(err, &txErr):
		c.print(c.styles.Warning, "Transaction error: "+txErr.Err.Error())
	case errors.As(err, &stmtErr):
		style := c.styles.Warning
		switch stmtErr.Classification {
		case driver.DatabaseError:
			style = c.styles.Danger
		case driver.TransientError:
			style = c.styles.Special
		}
		c.print(style, fmt.Sprintf("%s: %s", stmtErr.Title(), stmtErr.Message))
	case errors.As(err, &unknown), errors.As(err, &optErr):
		c.print(c.styles.Warning, err.Error())
	case errors.As(err, &encodeErr):
		c.print(c.styles.Danger, "Encoding error: "+encodeErr.Err.Error())
	default:
		c.print(c.styles.Danger, err.Error())
	}
}

func (c *Console) print(style lipgloss.Style, msg string) {
	fmt.Fprintln(c.status, style.Render(msg))
}

func (c *Console) prompt() {
	state := c.session.State()
	if !state.IsOpen() {
		fmt.Fprint(c.out, "\n"+c.styles.Prompt.Render("-> "))
		return
	}
	fmt.Fprint(c.out, "\n"+c.styles.Prompt.Render("-(")+
		c.styles.Counter.Render(fmt.Sprint(state.Counter))+
		c.styles.Prompt.Render(")-> "))
}

func (c *Console) banner() {
	fmt.Fprintf(c.status, "N4 v%s -- Console for Neo4j\nConnected to %s\n\n", c.opts.Version, c.opts.URI)
	fmt.Fprint(c.status, "//  to enter multi-line mode (finish with an empty line)\n/?  for help\n/x  to exit\n")
}
