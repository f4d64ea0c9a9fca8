package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProxySettings configures an HTTP proxy for repository access. When set, the
// runner materializes a temporary svn configuration directory before spawning.
type ProxySettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// RunOptions controls a single command invocation. Timeouts apply per
// invocation; a caller chaining several commands applies one to each.
type RunOptions struct {
	Dir     string
	Timeout time.Duration
	Proxy   *ProxySettings
}

// Runner abstracts the external svn executable. Arguments form a vector
// passed directly to the process, never a shell string. On success the
// captured stdout is returned verbatim.
type Runner interface {
	Run(ctx context.Context, args []string, opts RunOptions) (string, error)
}

// ErrTimeout marks an invocation that was forcibly terminated after its
// timeout elapsed. No partial stdout accompanies it.
var ErrTimeout = errors.New("command timed out")

// ErrExecutableNotFound marks a spawn failure, distinct from a nonzero exit.
var ErrExecutableNotFound = errors.New("svn executable not found")

// CommandError is returned when the process exits with a nonzero code. Its
// message is derived from stderr so it can be surfaced to a user as-is.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("svn %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return msg
}
