package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svnlens/svnlens/domain"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test drives a POSIX shell")
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("should return stdout verbatim on success", func(t *testing.T) {
		t.Parallel()
		skipOnWindows(t)

		// given
		r := New("sh", nil)

		// when
		out, err := r.Run(context.Background(), []string{"-c", "printf 'hello\\nworld\\n'"}, domain.RunOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, "hello\nworld\n", out)
	})

	t.Run("should run in the requested working directory", func(t *testing.T) {
		t.Parallel()
		skipOnWindows(t)

		// given
		dir := t.TempDir()
		r := New("sh", nil)

		// when
		out, err := r.Run(context.Background(), []string{"-c", "pwd"}, domain.RunOptions{Dir: dir})

		// then
		require.NoError(t, err)
		resolved, _ := filepath.EvalSymlinks(dir)
		assert.Contains(t, []string{dir + "\n", resolved + "\n"}, out)
	})

	t.Run("should return a CommandError carrying stderr and exit code", func(t *testing.T) {
		t.Parallel()
		skipOnWindows(t)

		// given
		r := New("sh", nil)

		// when
		_, err := r.Run(context.Background(), []string{"-c", "echo boom >&2; exit 3"}, domain.RunOptions{})

		// then
		require.Error(t, err)
		var cmdErr *domain.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 3, cmdErr.ExitCode)
		assert.Equal(t, "boom\n", cmdErr.Stderr)
		assert.Equal(t, "boom", cmdErr.Error())
	})

	t.Run("should kill the process and report a timeout", func(t *testing.T) {
		t.Parallel()
		skipOnWindows(t)

		// given
		r := New("sh", nil)
		started := time.Now()

		// when
		out, err := r.Run(
			context.Background(),
			[]string{"-c", "sleep 5"},
			domain.RunOptions{Timeout: 100 * time.Millisecond},
		)

		// then
		require.ErrorIs(t, err, domain.ErrTimeout)
		assert.Empty(t, out)
		assert.Less(t, time.Since(started), 3*time.Second)
	})

	t.Run("should not stay blocked on a helper that inherits the output pipe", func(t *testing.T) {
		t.Parallel()
		skipOnWindows(t)

		// given: the shell exits immediately but leaves a child holding stdout
		r := New("sh", nil)
		started := time.Now()

		// when
		out, err := r.Run(context.Background(), []string{"-c", "echo started; sleep 3 &"}, domain.RunOptions{})

		// then: the pipe is force-closed instead of waiting out the child
		require.NoError(t, err)
		assert.Equal(t, "started\n", out)
		assert.Less(t, time.Since(started), 2500*time.Millisecond)
	})

	t.Run("should distinguish a missing executable from a nonzero exit", func(t *testing.T) {
		t.Parallel()

		// given
		r := New("svnlens-definitely-not-installed", nil)

		// when
		_, err := r.Run(context.Background(), []string{"status"}, domain.RunOptions{})

		// then
		require.ErrorIs(t, err, domain.ErrExecutableNotFound)
	})

	t.Run("should surface caller cancellation as context.Canceled", func(t *testing.T) {
		t.Parallel()
		skipOnWindows(t)

		// given
		r := New("sh", nil)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		// when
		_, err := r.Run(ctx, []string{"-c", "sleep 5"}, domain.RunOptions{})

		// then
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteProxyConfigDir(t *testing.T) {
	t.Parallel()

	t.Run("should write a restricted servers file and clean up", func(t *testing.T) {
		t.Parallel()

		// given
		proxy := &domain.ProxySettings{Host: "proxy.local", Port: 8080, Username: "u", Password: "p"}

		// when
		dir, cleanup, err := writeProxyConfigDir(proxy)

		// then
		require.NoError(t, err)
		require.DirExists(t, dir)

		serversPath := filepath.Join(dir, "servers")
		data, readErr := os.ReadFile(serversPath)
		require.NoError(t, readErr)
		content := string(data)
		assert.Contains(t, content, "[global]")
		assert.Contains(t, content, "http-proxy-host = proxy.local")
		assert.Contains(t, content, "http-proxy-port = 8080")
		assert.Contains(t, content, "http-proxy-username = u")
		assert.Contains(t, content, "http-proxy-password = p")

		if runtime.GOOS != "windows" {
			info, statErr := os.Stat(serversPath)
			require.NoError(t, statErr)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		}

		// when: cleanup runs
		cleanup()

		// then
		assert.NoDirExists(t, dir)
	})

	t.Run("should omit credential lines when not configured", func(t *testing.T) {
		t.Parallel()

		// given
		proxy := &domain.ProxySettings{Host: "proxy.local", Port: 3128}

		// when
		dir, cleanup, err := writeProxyConfigDir(proxy)

		// then
		require.NoError(t, err)
		defer cleanup()
		data, readErr := os.ReadFile(filepath.Join(dir, "servers"))
		require.NoError(t, readErr)
		assert.NotContains(t, string(data), "username")
		assert.NotContains(t, string(data), "password")
	})
}
