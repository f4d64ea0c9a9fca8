package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
)

func newUpdateCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "update [path]",
		Short: "Bring the working copy up to date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			out, err := svc.Update(command.Context(), workingCopyArg(args))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newCleanupCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup [path]",
		Short: "Release working-copy locks after an interrupted operation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			out, err := svc.Cleanup(command.Context(), workingCopyArg(args))
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
