package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/technige/n4/internal/config"
	"github.com/technige/n4/internal/ctxlog"
	"github.com/technige/n4/internal/driver"
	"github.com/technige/n4/internal/driver/bolt"
)

// Version is reported by --version and in the console banner.
const Version = "1.1.0"

// Connector opens a database driver. Tests substitute a scripted driver.
type Connector func(ctx context.Context, opts bolt.Options) (driver.Driver, error)

// Connect is the production Connector.
func Connect(ctx context.Context, opts bolt.Options) (driver.Driver, error) {
	d, err := bolt.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// IO bundles the streams the application talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	// Err receives status lines and logs.
	Err io.Writer
	// Interactive enables the banner and the prompt.
	Interactive bool
	// Interrupts abort a pending console read.
	Interrupts <-chan os.Signal
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	io        IO
	logger    *slog.Logger
	appConfig *Config
	config    *config.Model
	connect   Connector
}

// NewApp merges the configuration layers, lowest first: built-in defaults,
// the configuration file, the environment, then explicitly set flags.
// lookup is usually os.LookupEnv.
func NewApp(streams IO, appConfig *Config, loader config.Loader, lookup func(string) (string, bool), connect Connector) (*App, error) {
	if streams.Out == nil {
		streams.Out = io.Discard
	}
	if streams.Err == nil {
		streams.Err = io.Discard
	}
	if connect == nil {
		connect = Connect
	}

	// Settings from the file can still change the level, so the first
	// logger only honours the flags.
	bootstrap := config.Defaults()
	appConfig.applyTo(bootstrap)
	logger := newLogger(bootstrap.Log.Level, bootstrap.Log.Format, streams.Err)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	model := config.Defaults()
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, model, appConfig.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = loaded
	}
	if lookup != nil {
		model.ApplyEnv(lookup)
	}
	appConfig.applyTo(model)
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger = newLogger(model.Log.Level, model.Log.Format, streams.Err)
	logger.Debug("Configuration merged.", "uri", model.Connection.URI, "user", model.Connection.User, "format", model.Output.Format)

	return &App{
		io:        streams,
		logger:    logger,
		appConfig: appConfig,
		config:    model,
		connect:   connect,
	}, nil
}

// Config returns the merged configuration. This is primarily for testing.
func (a *App) Config() *config.Model {
	return a.config
}
