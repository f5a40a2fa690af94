package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/technige/n4/internal/app"
	"github.com/technige/n4/internal/cli"
	"github.com/technige/n4/internal/console"
	"github.com/technige/n4/internal/hcl"
)

// main is the entrypoint for the n4 console.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// A .env file in the working directory may supply NEO4J_* settings.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file.", "error", err)
	}

	// Ctrl-C abandons the current input line rather than the process.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	streams := app.IO{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Interactive: console.IsTerminal(os.Stdin),
		Interrupts:  interrupts,
	}

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), streams, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, streams app.IO, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, streams.Out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	n4, err := app.NewApp(streams, appConfig, hcl.NewLoader(), os.LookupEnv, app.Connect)
	if err != nil {
		return err
	}

	code, err := n4.Run(ctx)
	if err != nil {
		return &cli.ExitError{Code: code, Message: err.Error()}
	}
	if code != 0 {
		return &cli.ExitError{Code: code}
	}
	return nil
}
