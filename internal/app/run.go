package app

import (
	"context"
	"fmt"

	"github.com/technige/n4/internal/console"
	"github.com/technige/n4/internal/ctxlog"
	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/driver/bolt"
	"github.com/technige/n4/internal/session"
)

// Run connects, then runs the configured statements or the interactive
// console. It returns the process exit code; the error is set only when
// the console never started.
func (a *App) Run(ctx context.Context) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	enc, err := cypher.NewEncoder(a.config.EncoderConfig())
	if err != nil {
		return 1, fmt.Errorf("invalid encoder configuration: %w", err)
	}
	format, err := a.config.OutputFormat()
	if err != nil {
		return 1, err
	}

	opts := bolt.Options{
		URI:      a.config.Connection.URI,
		User:     a.config.Connection.User,
		Password: a.config.Connection.Password,
		Secure:   a.config.Connection.Secure,
	}
	if a.appConfig.Verbose {
		opts.Logger = a.logger
	}
	d, err := a.connect(ctx, opts)
	if err != nil {
		return 1, fmt.Errorf("could not connect to %s: %w", opts.URI, err)
	}
	defer func() {
		if err := d.Close(ctx); err != nil {
			a.logger.Warn("Failed to close driver.", "error", err)
		}
	}()
	a.logger.Info("Connected.", "uri", opts.URI)

	s := session.New(d, session.Options{
		Encoder: enc,
		Format:  format,
		Out:     a.io.Out,
		Status:  a.io.Err,
	})
	c := console.New(s, console.Options{
		In:          a.io.In,
		Out:         a.io.Out,
		Status:      a.io.Err,
		Interactive: a.io.Interactive && len(a.appConfig.Statements) == 0,
		URI:         opts.URI,
		Version:     Version,
		Interrupts:  a.io.Interrupts,
	})

	var code int
	if len(a.appConfig.Statements) > 0 {
		code = c.RunStatements(ctx, a.appConfig.Statements)
	} else {
		code = c.Loop(ctx)
	}
	a.logger.Debug("App.Run method finished.", "exit_code", code)
	return code, nil
}
