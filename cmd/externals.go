package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
)

func newExternalsCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "externals [path]",
		Short: "Show svn:externals definitions in the working copy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			defs, err := svc.Externals(command.Context(), workingCopyArg(args))
			if err != nil {
				return err
			}

			for _, def := range defs {
				pin := ""
				if def.Revision > 0 {
					pin = fmt.Sprintf(" @r%d", def.Revision)
				}
				fmt.Printf("%s -> %s%s\n", def.Path, def.URL, pin)
			}
			return nil
		},
	}
}
