package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
)

func newLogCommand(svc *application.WorkingCopyService) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log [path]",
		Short: "Show repository history for a working copy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			result, err := svc.Log(command.Context(), workingCopyArg(args), limit)
			if err != nil {
				return err
			}

			for _, entry := range result.Entries {
				fmt.Printf("r%d | %s | %s\n%s\n", entry.Revision, entry.Author, entry.Date, entry.Message)
				for _, p := range entry.Paths {
					fmt.Printf("  %s %s\n", p.Action, p.Path)
				}
				fmt.Println()
			}
			if len(result.Entries) > 0 {
				fmt.Printf("Revisions r%d..r%d\n", result.StartRevision, result.EndRevision)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum number of revisions (0 = unlimited)")
	return cmd
}
