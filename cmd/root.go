// Package cmd defines the svnlens command-line surface. The commands are
// thin glue over the application service; all engine behavior lives below it.
package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
)

// NewRootCommand builds the root command with every subcommand attached.
func NewRootCommand(svc *application.WorkingCopyService) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "svnlens",
		Short: "Working-copy status engine for Subversion",
		Long: `svnlens drives the svn executable and turns its output into typed,
aggregated views of a working copy: per-file status, directory rollups,
history, blame, diffs, repository listings, and externals.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newStatusCommand(svc),
		newLogCommand(svc),
		newInfoCommand(svc),
		newBlameCommand(svc),
		newDiffCommand(svc),
		newListCommand(svc),
		newExternalsCommand(svc),
		newUpdateCommand(svc),
		newCleanupCommand(svc),
		newWatchCommand(svc),
	)
	return root
}

// workingCopyArg resolves the optional positional working-copy path.
func workingCopyArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
