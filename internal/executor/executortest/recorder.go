// Package executortest provides a recording executor.Runner for tests.
package executortest

import (
	"context"
	"sync"

	"github.com/dosanma1/forge-deploy/internal/executor"
)

// Recorder records every command it is asked to run and returns Err (or the
// result of RunFunc when set).
type Recorder struct {
	mu       sync.Mutex
	Commands []executor.Command
	Err      error
	RunFunc  func(ctx context.Context, cmd executor.Command) error
}

// Run implements executor.Runner.
func (r *Recorder) Run(ctx context.Context, cmd executor.Command) error {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	r.mu.Unlock()

	if r.RunFunc != nil {
		return r.RunFunc(ctx, cmd)
	}
	return r.Err
}

// Calls returns a copy of the recorded commands.
func (r *Recorder) Calls() []executor.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]executor.Command, len(r.Commands))
	copy(out, r.Commands)
	return out
}
