package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/technige/n4/internal/ctxlog"
	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver"
	"github.com/technige/n4/internal/render"
)

// TimestampLayout formats the time shown when a transaction begins or ends.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Options configures a Session. Zero fields take their defaults.
type Options struct {
	Encoder *cypher.Encoder
	Format  render.Format
	// Out receives result rows; Status receives summaries and notices.
	Out    io.Writer
	Status io.Writer
	// Now is the clock used for timings and timestamps.
	Now func() time.Time
}

// Session owns the transaction state for one console. It is not safe for
// concurrent use.
type Session struct {
	driver driver.Driver
	enc    *cypher.Encoder
	format render.Format
	out    io.Writer
	status io.Writer
	styles render.Styles
	now    func() time.Time

	session driver.Session
	tx      driver.Transaction
	txID    string
	counter int
}

// New returns an Idle session running statements against d.
func New(d driver.Driver, opts Options) *Session {
	if opts.Encoder == nil {
		opts.Encoder = cypher.MustNewEncoder(cypher.DefaultConfig())
	}
	if opts.Format == (render.Format{}) {
		opts.Format = render.DefaultFormat(render.Table)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Status == nil {
		opts.Status = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{
		driver: d,
		enc:    opts.Encoder,
		format: opts.Format,
		out:    opts.Out,
		status: opts.Status,
		styles: render.NewStyles(opts.Status),
		now:    opts.Now,
	}
}

// State returns Idle or Open with the current statement counter.
func (s *Session) State() State {
	return State{Counter: s.counter}
}

// Format returns the output format used for results.
func (s *Session) Format() render.Format {
	return s.format
}

// SetFormat replaces the output format for subsequent results.
func (s *Session) SetFormat(f render.Format) {
	s.format = f
}

// Encoder returns the encoder used for results.
func (s *Session) Encoder() *cypher.Encoder {
	return s.enc
}

// Execute handles one line of input that is not a command.
func (s *Session) Execute(ctx context.Context, line string) error {
	switch Classify(line) {
	case Empty:
		return nil
	case Begin:
		return s.Begin(ctx)
	case Commit:
		return s.Commit(ctx)
	case Rollback:
		return s.Rollback(ctx)
	case Command:
		return fmt.Errorf("session: %q is a command, not a statement", line)
	}
	return s.Run(ctx, line, nil)
}

// Begin opens a transaction. If one is already open it only warns.
func (s *Session) Begin(ctx context.Context) error {
	if s.tx != nil {
		s.warn("Transaction already open")
		return nil
	}
	sess, err := s.driver.NewSession(ctx)
	if err != nil {
		return err
	}
	tx, err := sess.BeginTransaction(ctx)
	if err != nil {
		s.closeSession(ctx, sess)
		return err
	}
	s.session, s.tx, s.counter = sess, tx, 1
	s.txID = uuid.NewString()
	ctxlog.FromContext(ctx).Debug("Transaction began.", "tx", s.txID)
	s.notice("(Transaction began at %s)", s.now().Format(TimestampLayout))
	return nil
}

// Commit commits the open transaction. The session returns to Idle even if
// the commit fails.
func (s *Session) Commit(ctx context.Context) error {
	if s.tx == nil {
		s.warn("No current transaction")
		return nil
	}
	err := s.tx.Commit(ctx)
	s.release(ctx)
	if err != nil {
		return &TransactionControlError{Op: "commit", Err: err}
	}
	s.notice("(Transaction committed at %s)", s.now().Format(TimestampLayout))
	return nil
}

// Rollback rolls back the open transaction. The session returns to Idle
// even if the rollback fails.
func (s *Session) Rollback(ctx context.Context) error {
	if s.tx == nil {
		s.warn("No current transaction")
		return nil
	}
	err := s.tx.Rollback(ctx)
	s.release(ctx)
	if err != nil {
		return &TransactionControlError{Op: "rollback", Err: err}
	}
	s.notice("(Transaction rolled back at %s)", s.now().Format(TimestampLayout))
	return nil
}

// Run executes a statement and renders its result. Inside a transaction the
// counter advances only once the statement has run and rendered.
func (s *Session) Run(ctx context.Context, statement string, params map[string]any) error {
	if s.tx == nil {
		return s.autocommit(ctx, statement, params)
	}
	if err := s.run(ctx, s.tx, statement, params); err != nil {
		return err
	}
	s.counter++
	return nil
}

// Query runs statement in a one-shot session and passes every record to fn.
// Nothing is rendered.
func (s *Session) Query(ctx context.Context, statement string, params map[string]any, fn func(*driver.Record) error) error {
	sess, err := s.driver.NewSession(ctx)
	if err != nil {
		return err
	}
	defer s.closeSession(ctx, sess)

	result, err := sess.Run(ctx, statement, params)
	if err != nil {
		return err
	}
	for result.Next(ctx) {
		if err := fn(result.Record()); err != nil {
			return err
		}
	}
	return result.Err()
}

// Close rolls back any open transaction and releases its session. Errors are
// logged rather than returned.
func (s *Session) Close(ctx context.Context) {
	if s.tx == nil {
		return
	}
	logger := ctxlog.FromContext(ctx)
	logger.Warn("Rolling back open transaction.", "tx", s.txID, "statements", s.counter-1)
	if err := s.tx.Rollback(ctx); err != nil {
		logger.Error("Rollback on close failed.", "tx", s.txID, "error", err)
	}
	s.release(ctx)
}

func (s *Session) autocommit(ctx context.Context, statement string, params map[string]any) error {
	sess, err := s.driver.NewSession(ctx)
	if err != nil {
		return err
	}
	defer s.closeSession(ctx, sess)
	return s.run(ctx, sess, statement, params)
}

func (s *Session) run(ctx context.Context, r driver.Runner, statement string, params map[string]any) error {
	logger := ctxlog.FromContext(ctx)
	if s.tx != nil {
		logger = logger.With("tx", s.txID, "counter", s.counter)
	}
	logger.Debug("Running statement.", "statement", statement)

	start := s.now()
	result, err := r.Run(ctx, statement, params)
	if err != nil {
		return err
	}
	w, err := render.New(s.format, s.enc, s.out, s.status)
	if err != nil {
		return err
	}
	n, err := render.WriteResult(ctx, w, result, s.format.PageSize)
	if err != nil {
		return err
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return err
	}
	elapsed := s.now().Sub(start)
	logger.Debug("Statement finished.", "records", n, "elapsed", elapsed, "server", summary.Server.String())
	return w.WriteSummary(render.Summary{Records: n, Elapsed: elapsed, Server: summary.Server})
}

func (s *Session) release(ctx context.Context) {
	if s.session != nil {
		s.closeSession(ctx, s.session)
	}
	ctxlog.FromContext(ctx).Debug("Transaction released.", "tx", s.txID)
	s.session, s.tx, s.counter, s.txID = nil, nil, 0, ""
}

func (s *Session) closeSession(ctx context.Context, sess driver.Session) {
	if err := sess.Close(ctx); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to close session.", "error", err)
	}
}

func (s *Session) notice(format string, args ...any) {
	fmt.Fprintln(s.status, s.styles.Notice.Render(fmt.Sprintf(format, args...)))
}

func (s *Session) warn(msg string) {
	fmt.Fprintln(s.status, s.styles.Warning.Render(msg))
}
