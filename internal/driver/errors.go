package driver

import (
	"errors"
	"fmt"
	"strings"
)

// Classification groups statement failures by their origin.
type Classification int

const (
	UnknownError Classification = iota
	ClientError
	DatabaseError
	TransientError
)

func (c Classification) String() string {
	switch c {
	case ClientError:
		return "ClientError"
	case DatabaseError:
		return "DatabaseError"
	case TransientError:
		return "TransientError"
	}
	return "UnknownError"
}

// ParseClassification extracts the classification from a status code of the
// form Neo.<Classification>.<Category>.<Title>.
func ParseClassification(code string) Classification {
	parts := strings.Split(code, ".")
	if len(parts) < 2 {
		return UnknownError
	}
	switch parts[1] {
	case "ClientError":
		return ClientError
	case "DatabaseError":
		return DatabaseError
	case "TransientError":
		return TransientError
	}
	return UnknownError
}

// StatementError is a recoverable failure reported for a single statement.
type StatementError struct {
	Classification Classification
	Code           string
	Message        string
	Err            error
}

// NewStatementError builds a StatementError, classifying it from code.
func NewStatementError(code, message string) *StatementError {
	return &StatementError{Classification: ParseClassification(code), Code: code, Message: message}
}

// Title is the last component of the status code, or the classification
// when the code is missing.
func (e *StatementError) Title() string {
	if e.Code == "" {
		return e.Classification.String()
	}
	parts := strings.Split(e.Code, ".")
	return parts[len(parts)-1]
}

func (e *StatementError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// ConnectionError means the database could not be reached or contact was
// lost. It is never retried.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("service unavailable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is, or wraps, a ConnectionError.
func IsConnectionError(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsStatementError reports whether err is, or wraps, a StatementError.
func IsStatementError(err error) bool {
	var target *StatementError
	return errors.As(err, &target)
}
