package console

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted reports that a pending read was abandoned on SIGINT.
	ErrInterrupted = errors.New("console: read interrupted")
	// ErrExit is returned by the exit command to end the loop.
	ErrExit = errors.New("console: exit requested")
)

// UnknownCommandError names a slash-command missing from the alias table.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + e.Name
}

// OptionError reports a bad key=value option passed to a command.
type OptionError struct {
	Command string
	Key     string
	Value   string
	Reason  string
}

func (e *OptionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("%s: option %s=%q %s", e.Command, e.Key, e.Value, e.Reason)
}
