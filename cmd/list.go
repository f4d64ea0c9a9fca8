package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/domain"
)

func newListCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <url>",
		Short: "Browse a repository URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			result, err := svc.List(command.Context(), args[0])
			if err != nil {
				return err
			}

			for _, entry := range result.Entries {
				name := entry.Name
				if entry.Kind == domain.KindDir {
					name += "/"
				}
				fmt.Printf("r%-6d %-12s %8d  %s\n", entry.Revision, entry.Author, entry.Size, name)
			}
			return nil
		},
	}
}
