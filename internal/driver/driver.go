package driver

import (
	"context"
	"net"
	"strconv"

	"github.com/technige/n4/internal/cypher"
)

// Driver opens sessions against a database.
type Driver interface {
	NewSession(ctx context.Context) (Session, error)
	Close(ctx context.Context) error
}

// Runner runs a single statement and returns its result stream.
type Runner interface {
	Run(ctx context.Context, statement string, params map[string]any) (Result, error)
}

// Session is a connection-scoped capability. Statements run on a session
// directly are autocommitted.
type Session interface {
	Runner
	BeginTransaction(ctx context.Context) (Transaction, error)
	Close(ctx context.Context) error
}

// Transaction is an explicitly managed unit of work spanning several
// statements.
type Transaction interface {
	Runner
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Result is a lazy, forward-only stream of records with one step of
// lookahead.
type Result interface {
	// Keys returns the column names, in order.
	Keys() ([]string, error)
	// Next advances to the next record, returning false when the stream is
	// exhausted or failed.
	Next(ctx context.Context) bool
	// Record returns the current record.
	Record() *Record
	// Peek reports whether another record is available without consuming it.
	Peek(ctx context.Context) bool
	// Err returns the error that stopped Next or Peek, if any.
	Err() error
	// Consume discards any remaining records and returns the summary.
	Consume(ctx context.Context) (Summary, error)
}

// Record is one row of a result.
type Record struct {
	Keys   []string
	Values []cypher.Value
}

// Get returns the value for key.
func (r *Record) Get(key string) (cypher.Value, bool) {
	for i, k := range r.Keys {
		if k == key && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Summary describes a completed result.
type Summary struct {
	Server   ServerAddress
	Counters map[string]int
}

// ServerAddress identifies the server that produced a result.
type ServerAddress struct {
	Host string
	Port int
}

// String formats the address as host:port, bracketing IPv6 hosts.
func (a ServerAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// ParseServerAddress splits a host:port string. A missing or malformed port
// is reported as zero.
func ParseServerAddress(address string) ServerAddress {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return ServerAddress{Host: address}
	}
	p, _ := strconv.Atoi(port)
	return ServerAddress{Host: host, Port: p}
}
