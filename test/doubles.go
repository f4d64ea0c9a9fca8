// Package test provides shared test doubles.
package test

import (
	"context"
	"sync"
	"time"

	"github.com/svnlens/svnlens/domain"
)

// StubRunner is a scripted domain.Runner: outputs and errors are keyed by the
// svn subcommand (the first argument). Every invocation is recorded.
type StubRunner struct {
	Outputs map[string]string
	Errs    map[string]error
	Delay   time.Duration // simulated process runtime, interruptible by ctx

	mu    sync.Mutex
	calls [][]string
}

// Run implements domain.Runner.
func (r *StubRunner) Run(ctx context.Context, args []string, _ domain.RunOptions) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{}, args...))
	r.mu.Unlock()

	if r.Delay > 0 {
		timer := time.NewTimer(r.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	if err := r.Errs[key]; err != nil {
		return "", err
	}
	return r.Outputs[key], nil
}

// Calls returns a copy of every argument vector seen so far.
func (r *StubRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}
