package mks

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Response is a canned reply for RecordingInvoker.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// RecordingInvoker is a test double for ExecInvoker.
// It replays canned responses keyed by si subcommand and records every call.
type RecordingInvoker struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []Command
}

// NewRecordingInvoker creates an invoker with no canned responses.
func NewRecordingInvoker() *RecordingInvoker {
	return &RecordingInvoker{responses: make(map[string][]Response)}
}

// On queues responses for the given subcommand. The last response repeats once the queue drains.
func (r *RecordingInvoker) On(subcommand string, responses ...Response) *RecordingInvoker {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[subcommand] = append(r.responses[subcommand], responses...)
	return r
}

// Invoke records the call and returns the next response queued for its subcommand.
func (r *RecordingInvoker) Invoke(ctx context.Context, cmd Command, _ time.Duration) (*InvokeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, cmd)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queue := r.responses[cmd.Name()]
	if len(queue) == 0 {
		return nil, fmt.Errorf("no response recorded for %q", cmd.Name())
	}
	resp := queue[0]
	if len(queue) > 1 {
		r.responses[cmd.Name()] = queue[1:]
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &InvokeResult{Stdout: resp.Stdout, Stderr: resp.Stderr, ExitCode: resp.ExitCode}, nil
}

// Calls returns a copy of the recorded commands in invocation order.
func (r *RecordingInvoker) Calls() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]Command, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// CallsTo returns the recorded commands for one subcommand.
func (r *RecordingInvoker) CallsTo(subcommand string) []Command {
	var out []Command
	for _, c := range r.Calls() {
		if c.Name() == subcommand {
			out = append(out, c)
		}
	}
	return out
}

// Compile-time interface conformance check.
var _ Invoker = (*RecordingInvoker)(nil)
