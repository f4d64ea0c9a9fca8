package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
)

func newBlameCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "blame <file>",
		Short: "Show per-line revision and author attribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			result, err := svc.Blame(command.Context(), ".", args[0])
			if err != nil {
				return err
			}

			for _, line := range result.Lines {
				fmt.Printf("%6d  r%-6d %-12s %s\n", line.LineNumber, line.Revision, line.Author, line.Content)
			}
			return nil
		},
	}
}
