package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
)

func newInfoCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "info [path]",
		Short: "Show working-copy metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			result, err := svc.Info(command.Context(), workingCopyArg(args))
			if err != nil {
				return err
			}

			fmt.Printf("URL:              %s\n", result.URL)
			fmt.Printf("Repository root:  %s\n", result.RepositoryRoot)
			fmt.Printf("Repository UUID:  %s\n", result.RepositoryUUID)
			fmt.Printf("Revision:         %d\n", result.Revision)
			fmt.Printf("Last changed:     r%d by %s on %s\n",
				result.LastChangedRev, result.LastChangedAuthor, result.LastChangedDate)
			return nil
		},
	}
}
