// Package drivertest provides a scripted, in-memory driver.Driver for tests.
// Every call is recorded so tests can assert on the exact sequence of session
// and transaction operations.
package drivertest

import (
	"context"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver"
)

// DefaultServer is the address reported by results unless a Response
// overrides it.
var DefaultServer = driver.ServerAddress{Host: "localhost", Port: 7687}

// Response scripts the outcome of a single Run call.
type Response struct {
	Keys []string
	Rows [][]cypher.Value
	// Err is returned from Run itself.
	Err error
	// StreamErr is reported once every row has been consumed.
	StreamErr error
	Server    driver.ServerAddress
}

// Handler decides the response for a statement.
type Handler func(statement string, params map[string]any) Response

// Call is one recorded driver operation.
type Call struct {
	Op        string
	Statement string
	Params    map[string]any
}

// Operation names used in Call.Op.
const (
	OpOpen     = "session.open"
	OpRun      = "session.run"
	OpBegin    = "tx.begin"
	OpTxRun    = "tx.run"
	OpCommit   = "tx.commit"
	OpRollback = "tx.rollback"
	OpClose    = "session.close"
)

// Driver is a scripted driver.Driver.
type Driver struct {
	Handler Handler

	OpenErr     error
	BeginErr    error
	CommitErr   error
	RollbackErr error

	Calls   []Call
	Results []*Result
	Open    int
	Closed  bool
}

// New returns a driver answering every statement with h. A nil handler
// answers with an empty result.
func New(h Handler) *Driver {
	if h == nil {
		h = func(string, map[string]any) Response { return Response{} }
	}
	return &Driver{Handler: h}
}

// Static returns a handler that always answers with r.
func Static(r Response) Handler {
	return func(string, map[string]any) Response { return r }
}

// Rows builds a response from column keys and rows.
func Rows(keys []string, rows ...[]cypher.Value) Response {
	return Response{Keys: keys, Rows: rows}
}

// Range builds a single-column response with the integers 1..n.
func Range(key string, n int) Response {
	rows := make([][]cypher.Value, n)
	for i := range rows {
		rows[i] = []cypher.Value{cypher.Integer(i + 1)}
	}
	return Response{Keys: []string{key}, Rows: rows}
}

// Ops returns the recorded operation names in order.
func (d *Driver) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// LastResult returns the most recently produced result, or nil.
func (d *Driver) LastResult() *Result {
	if len(d.Results) == 0 {
		return nil
	}
	return d.Results[len(d.Results)-1]
}

func (d *Driver) record(op, statement string, params map[string]any) {
	d.Calls = append(d.Calls, Call{Op: op, Statement: statement, Params: params})
}

func (d *Driver) NewSession(ctx context.Context) (driver.Session, error) {
	d.record(OpOpen, "", nil)
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	d.Open++
	return &session{driver: d}, nil
}

func (d *Driver) Close(ctx context.Context) error {
	d.Closed = true
	return nil
}

func (d *Driver) run(op, statement string, params map[string]any) (driver.Result, error) {
	d.record(op, statement, params)
	resp := d.Handler(statement, params)
	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Server == (driver.ServerAddress{}) {
		resp.Server = DefaultServer
	}
	r := &Result{response: resp}
	d.Results = append(d.Results, r)
	return r, nil
}

type session struct {
	driver *Driver
	closed bool
}

func (s *session) Run(ctx context.Context, statement string, params map[string]any) (driver.Result, error) {
	return s.driver.run(OpRun, statement, params)
}

func (s *session) BeginTransaction(ctx context.Context) (driver.Transaction, error) {
	s.driver.record(OpBegin, "", nil)
	if s.driver.BeginErr != nil {
		return nil, s.driver.BeginErr
	}
	return &transaction{driver: s.driver}, nil
}

func (s *session) Close(ctx context.Context) error {
	s.driver.record(OpClose, "", nil)
	if !s.closed {
		s.closed = true
		s.driver.Open--
	}
	return nil
}

type transaction struct {
	driver *Driver
}

func (t *transaction) Run(ctx context.Context, statement string, params map[string]any) (driver.Result, error) {
	return t.driver.run(OpTxRun, statement, params)
}

func (t *transaction) Commit(ctx context.Context) error {
	t.driver.record(OpCommit, "", nil)
	return t.driver.CommitErr
}

func (t *transaction) Rollback(ctx context.Context) error {
	t.driver.record(OpRollback, "", nil)
	return t.driver.RollbackErr
}

// Result streams scripted rows and counts how they are consumed.
type Result struct {
	response Response
	pos      int
	current  *driver.Record
	err      error

	// Consumed counts records returned by Next.
	Consumed int
	// Peeks counts calls to Peek.
	Peeks int
}

func (r *Result) Keys() ([]string, error) {
	return r.response.Keys, nil
}

func (r *Result) Next(ctx context.Context) bool {
	if r.pos >= len(r.response.Rows) {
		r.current = nil
		r.err = r.response.StreamErr
		return false
	}
	r.current = &driver.Record{Keys: r.response.Keys, Values: r.response.Rows[r.pos]}
	r.pos++
	r.Consumed++
	return true
}

func (r *Result) Record() *driver.Record {
	return r.current
}

func (r *Result) Peek(ctx context.Context) bool {
	r.Peeks++
	return r.pos < len(r.response.Rows)
}

func (r *Result) Err() error {
	return r.err
}

func (r *Result) Consume(ctx context.Context) (driver.Summary, error) {
	r.pos = len(r.response.Rows)
	if r.response.StreamErr != nil {
		return driver.Summary{}, r.response.StreamErr
	}
	return driver.Summary{Server: r.response.Server}, nil
}

// Remaining reports how many scripted rows have not been consumed.
func (r *Result) Remaining() int {
	return len(r.response.Rows) - r.pos
}
