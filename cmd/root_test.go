package cmd //nolint:testpackage // tests unexported helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/config"
	"github.com/svnlens/svnlens/infrastructure/scan"
	testdoubles "github.com/svnlens/svnlens/test"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should expose every engine operation as a subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		svc := application.NewWorkingCopyService(&testdoubles.StubRunner{}, scan.NewRegistry(), config.Default())

		// when
		root := NewRootCommand(svc)

		// then
		names := make(map[string]bool)
		for _, sub := range root.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{
			"status", "log", "info", "blame", "diff", "ls",
			"externals", "update", "cleanup", "watch",
		} {
			assert.True(t, names[want], "missing subcommand %q", want)
		}
	})
}

func TestWorkingCopyArg(t *testing.T) {
	t.Parallel()

	t.Run("should default to the current directory", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, ".", workingCopyArg(nil))
		require.Equal(t, "/wc", workingCopyArg([]string{"/wc"}))
	})
}
