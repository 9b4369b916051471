package mks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout is wrapped by an InvocationError when the invoker's deadline expired.
var ErrTimeout = errors.New("si command timed out")

// InvocationError reports that the si executable could not be started,
// exited with a non-zero code, or reported an exception in its response.
type InvocationError struct {
	Command  string
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "si command failed: %s", e.Command)
	if e.TimedOut {
		b.WriteString(": timed out")
	} else if e.ExitCode != 0 {
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		fmt.Fprintf(&b, ": %s", msg)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// ParseError reports si output that did not have the expected shape.
type ParseError struct {
	Operation string // "viewsandbox" or "memberinfo"
	Member    string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("parse %s output for %s: %v", e.Operation, e.Member, e.Err)
	}
	return fmt.Sprintf("parse %s output: %v", e.Operation, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a missing or invalid setting detected before any si call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
