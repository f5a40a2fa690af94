package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/technige/n4/internal/app"
	"github.com/technige/n4/internal/render"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// formatValue is a pflag.Value accepting the output format names.
type formatValue struct {
	kind render.Kind
}

func (f *formatValue) String() string { return f.kind.String() }

func (f *formatValue) Set(s string) error {
	kind, err := render.ParseKind(s)
	if err != nil {
		return err
	}
	f.kind = kind
	return nil
}

func (f *formatValue) Type() string { return "format" }

const long = `N4 is a console for Neo4j. Without statements it starts an interactive
session; otherwise each statement is run in order and the program exits.

Connection settings are read from the configuration file, then from the
NEO4J_URI, NEO4J_USER and NEO4J_PASSWORD environment variables, and finally
from the flags below.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	if args == nil {
		args = []string{}
	}

	var cfg app.Config
	format := &formatValue{kind: render.Table}
	ran := false

	cmd := &cobra.Command{
		Use:               "n4 [flags] [STATEMENT...]",
		Short:             "Console for Neo4j",
		Long:              long,
		Version:           app.Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			cfg.Statements = args
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.URI, app.FlagURI, "a", "bolt://localhost:7687", "Database URI.")
	flags.StringVarP(&cfg.User, app.FlagUser, "u", "neo4j", "User name.")
	flags.StringVarP(&cfg.Password, app.FlagPassword, "p", "", "Password.")
	flags.BoolVarP(&cfg.Secure, app.FlagSecure, "s", false, "Use a TLS connection.")
	flags.BoolVarP(&cfg.Verbose, app.FlagVerbose, "v", false, "Log debug output, including the driver's.")
	flags.VarP(format, app.FlagFormat, "f", "Result format. Options: 'table', 'csv' or 'tsv'.")
	flags.StringVar(&cfg.ConfigPath, app.FlagConfig, app.DefaultConfigPath(), "Path to an HCL configuration file.")
	flags.StringVar(&cfg.LogLevel, app.FlagLogLevel, "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&cfg.LogFormat, app.FlagLogFormat, "text", "Log output format. Options: 'text' or 'json'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// --help or --version was handled by cobra.
		return nil, true, nil
	}

	cfg.Format = format.String()
	cfg.Set = map[string]bool{}
	flags.Visit(func(f *pflag.Flag) {
		cfg.Set[f.Name] = true
	})

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}
