// Package runner spawns the svn executable and captures its output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/svnlens/svnlens/domain"
)

// SVNRunner invokes the svn executable with an argument vector. The vector is
// handed to the process directly, never interpreted by a shell, and the child
// runs under a pinned UTF-8 locale so its output stays parseable and
// non-localized.
type SVNRunner struct {
	executable string
	proxy      *domain.ProxySettings
}

// New creates a runner. An empty executable falls back to the per-OS default;
// proxy settings, when non-nil, apply to every invocation unless overridden
// per call.
func New(executable string, proxy *domain.ProxySettings) *SVNRunner {
	if executable == "" {
		executable = DefaultExecutable()
	}
	return &SVNRunner{executable: executable, proxy: proxy}
}

// DefaultExecutable resolves the platform's svn binary name.
func DefaultExecutable() string {
	if runtime.GOOS == "windows" {
		return "svn.exe"
	}
	return "svn"
}

// Run executes one command. On success the captured stdout is returned
// verbatim. Failures map to the invocation taxonomy: domain.ErrTimeout when
// the per-call timeout forced a kill (no partial stdout),
// domain.ErrExecutableNotFound on spawn failure, and *domain.CommandError on
// a nonzero exit.
func (r *SVNRunner) Run(ctx context.Context, args []string, opts domain.RunOptions) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	runArgs := append([]string{}, args...)

	proxy := opts.Proxy
	if proxy == nil {
		proxy = r.proxy
	}
	if proxy != nil {
		configDir, cleanup, err := writeProxyConfigDir(proxy)
		if err != nil {
			return "", fmt.Errorf("failed to prepare proxy config: %w", err)
		}
		// the temporary config dir must go away on every exit path
		defer cleanup()
		runArgs = append(runArgs, "--config-dir", configDir)
	}

	cmd := exec.CommandContext(ctx, r.executable, runArgs...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), "LC_ALL=en_US.UTF-8", "LANG=en_US.UTF-8")
	// a spawned helper inheriting the output pipes must not keep Run blocked
	// after svn itself exits or is killed
	cmd.WaitDelay = time.Second
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("Running %s %s (dir=%q)", r.executable, strings.Join(runArgs, " "), opts.Dir)

	err := cmd.Run()
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return stdout.String(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s: svn %s", domain.ErrTimeout, opts.Timeout, strings.Join(args, " "))
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return "", ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", &domain.CommandError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", fmt.Errorf("%w: %q", domain.ErrExecutableNotFound, r.executable)
	}
	return "", fmt.Errorf("failed to start %q: %w", r.executable, err)
}

// writeProxyConfigDir materializes a restrictively-permissioned temporary svn
// configuration directory containing a servers file with the proxy settings.
// The returned cleanup removes the directory.
func writeProxyConfigDir(proxy *domain.ProxySettings) (string, func(), error) {
	dir, err := os.MkdirTemp("", "svnlens-config-")
	if err != nil {
		return "", nil, err
	}
	if chmodErr := os.Chmod(dir, 0o700); chmodErr != nil {
		_ = os.RemoveAll(dir)
		return "", nil, chmodErr
	}

	var b strings.Builder
	b.WriteString("[global]\n")
	fmt.Fprintf(&b, "http-proxy-host = %s\n", proxy.Host)
	fmt.Fprintf(&b, "http-proxy-port = %d\n", proxy.Port)
	if proxy.Username != "" {
		fmt.Fprintf(&b, "http-proxy-username = %s\n", proxy.Username)
	}
	if proxy.Password != "" {
		fmt.Fprintf(&b, "http-proxy-password = %s\n", proxy.Password)
	}

	serversPath := filepath.Join(dir, "servers")
	if writeErr := os.WriteFile(serversPath, []byte(b.String()), 0o600); writeErr != nil {
		_ = os.RemoveAll(dir)
		return "", nil, writeErr
	}

	cleanup := func() {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			logger.Warnf("Failed to remove temporary config dir %q: %v", dir, removeErr)
		}
	}
	return dir, cleanup, nil
}
