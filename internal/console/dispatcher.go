package console

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/technige/n4/internal/ctxlog"
	"github.com/technige/n4/internal/render"
	"github.com/technige/n4/internal/session"
)

// Args holds the key=value options given after a command name.
type Args map[string]string

// Handler runs one command.
type Handler func(ctx context.Context, args Args) error

// Dispatcher routes slash-commands to their handlers.
type Dispatcher struct {
	session   *session.Session
	defaults  render.Format
	out       io.Writer
	status    io.Writer
	location  *time.Location
	multiline bool
	commands  map[string]Handler
}

// NewDispatcher returns a dispatcher acting on s. Format commands start from
// defaults; info commands print to out and help goes to status.
func NewDispatcher(s *session.Session, defaults render.Format, out, status io.Writer) *Dispatcher {
	d := &Dispatcher{
		session:  s,
		defaults: defaults,
		out:      out,
		status:   status,
		location: time.Local,
	}
	d.commands = map[string]Handler{
		"//": d.setMultiline,

		"/?":    d.help,
		"/h":    d.help,
		"/help": d.help,

		"/x":    d.exit,
		"/exit": d.exit,

		"/csv":   d.setFormat(render.CSV),
		"/table": d.setFormat(render.Table),
		"/tsv":   d.setFormat(render.TSV),

		"/config": d.showConfig,
		"/kernel": d.showKernel,
	}
	return d
}

// SetLocation sets the zone used to show kernel timestamps.
func (d *Dispatcher) SetLocation(loc *time.Location) {
	d.location = loc
}

// Commands lists every registered name, sorted.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TakeMultiline reports whether the next read should collect several lines,
// clearing the request.
func (d *Dispatcher) TakeMultiline() bool {
	m := d.multiline
	d.multiline = false
	return m
}

// Dispatch splits line into shell words and runs the named command.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	terms, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("cannot parse command: %w", err)
	}
	if len(terms) == 0 {
		return nil
	}
	name := terms[0]
	handler, ok := d.commands[name]
	if !ok {
		return &UnknownCommandError{Name: name}
	}
	args := make(Args, len(terms)-1)
	for _, term := range terms[1:] {
		key, value, _ := strings.Cut(term, "=")
		args[key] = value
	}
	ctxlog.FromContext(ctx).Debug("Dispatching command.", "command", name, "args", args)
	return handler(ctx, args)
}

func (d *Dispatcher) setMultiline(ctx context.Context, args Args) error {
	d.multiline = true
	return nil
}

func (d *Dispatcher) help(ctx context.Context, args Args) error {
	_, err := io.WriteString(d.status, helpText)
	return err
}

func (d *Dispatcher) exit(ctx context.Context, args Args) error {
	return ErrExit
}

func (d *Dispatcher) setFormat(kind render.Kind) Handler {
	name := "/" + kind.String()
	return func(ctx context.Context, args Args) error {
		f := d.defaults
		f.Kind = kind
		for _, key := range sortedKeys(args) {
			value := args[key]
			var err error
			switch {
			case key == "header":
				f.Header, err = parseSwitch(value)
			case key == "page_size" && kind == render.Table:
				f.PageSize, err = strconv.Atoi(value)
			case key == "blank_lines" && kind == render.Table:
				f.BlankLines, err = strconv.Atoi(value)
			default:
				return &OptionError{Command: name, Key: key, Value: value, Reason: "is not supported"}
			}
			if err != nil {
				return &OptionError{Command: name, Key: key, Value: value, Reason: "is not valid"}
			}
		}
		if err := f.Validate(); err != nil {
			return &OptionError{Command: name, Reason: err.Error()}
		}
		d.session.SetFormat(f)
		return nil
	}
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", value)
}

func sortedKeys(args Args) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func rejectArgs(name string, args Args) error {
	keys := sortedKeys(args)
	if len(keys) == 0 {
		return nil
	}
	return &OptionError{Command: name, Key: keys[0], Value: args[keys[0]], Reason: "is not supported"}
}

const helpText = `N4 is an interactive Cypher environment for use with Neo4j.

Type Cypher statements at the prompt and press [Enter] to run.
BEGIN, COMMIT and ROLLBACK on a line of their own control an explicit transaction.

General commands:
  //  to enter multi-line mode (finish with an empty line)
  /?  for help
  /x  to exit

Formatting commands:
  /csv    format output as comma-separated values
  /table  format output in a table
  /tsv    format output as tab-separated values

  All accept header=on|off; /table also accepts page_size=N and blank_lines=N.

Information commands:
  /config   show Neo4j server configuration
  /kernel   show Neo4j kernel information
`
