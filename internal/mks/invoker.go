package mks

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

const killWaitDelay = 5 * time.Second

// InvokeResult captures the output of one si process.
type InvokeResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Invoker runs an si command and captures its output.
// A non-nil error means the process could not be run to completion;
// a non-zero exit code is reported in the result.
type Invoker interface {
	Invoke(ctx context.Context, cmd Command, timeout time.Duration) (*InvokeResult, error)
}

// ExecInvoker runs si as a child process.
type ExecInvoker struct {
	// Dir is the working directory of the child process. Empty means the current directory.
	Dir string
}

// Invoke runs the command, killing it when the timeout elapses.
func (e *ExecInvoker) Invoke(ctx context.Context, cmd Command, timeout time.Duration) (*InvokeResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Executable, cmd.Args...)
	c.Dir = e.Dir
	// Grandchildren may hold the output pipes open after si is killed.
	c.WaitDelay = killWaitDelay
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := &InvokeResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, &InvocationError{Command: cmd.String(), Stderr: result.Stderr, TimedOut: true, Err: ErrTimeout}
		}
		return nil, &InvocationError{Command: cmd.String(), Stderr: result.Stderr, Err: ctxErr}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return nil, &InvocationError{Command: cmd.String(), Err: err}
}

// Compile-time interface conformance check.
var _ Invoker = (*ExecInvoker)(nil)

// run invokes cmd and turns a non-zero exit code into an InvocationError.
func run(ctx context.Context, inv Invoker, cmd Command, timeout time.Duration) (string, error) {
	res, err := inv.Invoke(ctx, cmd, timeout)
	if err != nil {
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			return "", err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &InvocationError{Command: cmd.String(), TimedOut: true, Err: ErrTimeout}
		}
		return "", &InvocationError{Command: cmd.String(), Err: err}
	}
	if res == nil {
		return "", &InvocationError{Command: cmd.String(), Err: errors.New("invoker returned no result")}
	}
	if res.ExitCode != 0 {
		return "", &InvocationError{Command: cmd.String(), ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}
