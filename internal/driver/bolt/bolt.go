package bolt

import (
	"context"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/technige/n4/internal/driver"
)

// Options describes how to reach the database.
type Options struct {
	URI      string
	User     string
	Password string
	// Secure switches plain bolt and neo4j URIs to their TLS variants.
	Secure bool
	// Logger, when set, receives the Neo4j driver's own diagnostics.
	Logger *slog.Logger
}

// Driver is a driver.Driver backed by a neo4j.DriverWithContext.
type Driver struct {
	inner neo4j.DriverWithContext
	uri   string
}

// Connect creates a driver and verifies the server can be reached. Any
// failure is reported as a driver.ConnectionError.
func Connect(ctx context.Context, opts Options) (*Driver, error) {
	uri := opts.URI
	if opts.Secure {
		uri = SecureURI(uri)
	}
	auth := neo4j.NoAuth()
	if opts.User != "" {
		auth = neo4j.BasicAuth(opts.User, opts.Password, "")
	}
	inner, err := neo4j.NewDriverWithContext(uri, auth, func(c *neo4j.Config) {
		if opts.Logger != nil {
			c.Log = &logBridge{logger: opts.Logger}
		}
	})
	if err != nil {
		return nil, &driver.ConnectionError{Err: err}
	}
	if err := inner.VerifyConnectivity(ctx); err != nil {
		_ = inner.Close(ctx)
		return nil, &driver.ConnectionError{Err: err}
	}
	return &Driver{inner: inner, uri: uri}, nil
}

// SecureURI rewrites bolt:// and neo4j:// to bolt+s:// and neo4j+s://.
// Other URIs are returned unchanged.
func SecureURI(uri string) string {
	for _, scheme := range []string{"bolt", "neo4j"} {
		if rest, ok := strings.CutPrefix(uri, scheme+"://"); ok {
			return scheme + "+s://" + rest
		}
	}
	return uri
}

// URI is the address the driver connected to.
func (d *Driver) URI() string {
	return d.uri
}

func (d *Driver) NewSession(ctx context.Context) (driver.Session, error) {
	return &session{inner: d.inner.NewSession(ctx, neo4j.SessionConfig{})}, nil
}

func (d *Driver) Close(ctx context.Context) error {
	return d.inner.Close(ctx)
}

type session struct {
	inner neo4j.SessionWithContext
}

func (s *session) Run(ctx context.Context, statement string, params map[string]any) (driver.Result, error) {
	r, err := s.inner.Run(ctx, statement, params)
	if err != nil {
		return nil, mapError(err)
	}
	return &result{inner: r}, nil
}

func (s *session) BeginTransaction(ctx context.Context) (driver.Transaction, error) {
	tx, err := s.inner.BeginTransaction(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &transaction{inner: tx}, nil
}

func (s *session) Close(ctx context.Context) error {
	return mapError(s.inner.Close(ctx))
}

type transaction struct {
	inner neo4j.ExplicitTransaction
}

func (t *transaction) Run(ctx context.Context, statement string, params map[string]any) (driver.Result, error) {
	r, err := t.inner.Run(ctx, statement, params)
	if err != nil {
		return nil, mapError(err)
	}
	return &result{inner: r}, nil
}

func (t *transaction) Commit(ctx context.Context) error {
	return mapError(t.inner.Commit(ctx))
}

func (t *transaction) Rollback(ctx context.Context) error {
	return mapError(t.inner.Rollback(ctx))
}

type result struct {
	inner  neo4j.ResultWithContext
	record *driver.Record
}

func (r *result) Keys() ([]string, error) {
	keys, err := r.inner.Keys()
	return keys, mapError(err)
}

func (r *result) Next(ctx context.Context) bool {
	if !r.inner.Next(ctx) {
		r.record = nil
		return false
	}
	rec := r.inner.Record()
	r.record = &driver.Record{Keys: rec.Keys, Values: Values(rec.Values)}
	return true
}

func (r *result) Record() *driver.Record {
	return r.record
}

func (r *result) Peek(ctx context.Context) bool {
	return r.inner.Peek(ctx)
}

func (r *result) Err() error {
	return mapError(r.inner.Err())
}

func (r *result) Consume(ctx context.Context) (driver.Summary, error) {
	s, err := r.inner.Consume(ctx)
	if err != nil {
		return driver.Summary{}, mapError(err)
	}
	summary := driver.Summary{Server: driver.ParseServerAddress(s.Server().Address())}
	if c := s.Counters(); c != nil {
		summary.Counters = map[string]int{
			"nodes_created":         c.NodesCreated(),
			"nodes_deleted":         c.NodesDeleted(),
			"relationships_created": c.RelationshipsCreated(),
			"relationships_deleted": c.RelationshipsDeleted(),
			"properties_set":        c.PropertiesSet(),
			"labels_added":          c.LabelsAdded(),
			"labels_removed":        c.LabelsRemoved(),
		}
	}
	return summary, nil
}
