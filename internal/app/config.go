package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/technige/n4/internal/config"
	"github.com/technige/n4/internal/render"
)

// Flag names, as recorded in Config.Set.
const (
	FlagConfig    = "config"
	FlagURI       = "uri"
	FlagUser      = "user"
	FlagPassword  = "password"
	FlagSecure    = "secure"
	FlagVerbose   = "verbose"
	FlagFormat    = "format"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// Config holds the command-line settings for an App instance to run.
type Config struct {
	ConfigPath string

	URI      string
	User     string
	Password string
	Secure   bool

	Verbose   bool
	Format    string
	LogLevel  string
	LogFormat string

	// Statements are run in order instead of starting the console.
	Statements []string

	// Set names the flags given explicitly. Only those override the
	// configuration file and the environment.
	Set map[string]bool
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Set[FlagFormat] {
		if _, err := render.ParseKind(cfg.Format); err != nil {
			return nil, err
		}
	}
	if cfg.Set[FlagLogLevel] {
		switch cfg.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			return nil, fmt.Errorf("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
		}
	}
	if cfg.Set[FlagLogFormat] && cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format: must be 'text' or 'json'")
	}
	if cfg.Set == nil {
		cfg.Set = map[string]bool{}
	}
	return &cfg, nil
}

// DefaultConfigPath is ~/.n4.hcl, or .n4.hcl when there is no home
// directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".n4.hcl"
	}
	return filepath.Join(home, ".n4.hcl")
}

// applyTo overrides m with every flag that was set.
func (c *Config) applyTo(m *config.Model) {
	if c.Set[FlagURI] {
		m.Connection.URI = c.URI
	}
	if c.Set[FlagUser] {
		m.Connection.User = c.User
	}
	if c.Set[FlagPassword] {
		m.Connection.Password = c.Password
	}
	if c.Set[FlagSecure] {
		m.Connection.Secure = c.Secure
	}
	if c.Set[FlagFormat] {
		m.Output.Format = c.Format
	}
	if c.Set[FlagLogLevel] {
		m.Log.Level = c.LogLevel
	}
	if c.Set[FlagLogFormat] {
		m.Log.Format = c.LogFormat
	}
	if c.Verbose {
		m.Log.Level = "debug"
	}
}
