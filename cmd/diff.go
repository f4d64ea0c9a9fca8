package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/domain"
)

func newDiffCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "diff [target]",
		Short: "Show working-copy changes as a parsed diff",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}

			result, err := svc.Diff(command.Context(), ".", target)
			if err != nil {
				return err
			}
			if result.IsBinary {
				fmt.Println("Binary file changed.")
				return nil
			}
			if !result.HasChanges {
				fmt.Println("No changes.")
				return nil
			}

			for _, file := range result.Files {
				fmt.Printf("=== %s\n", file.NewPath)
				for _, hunk := range file.Hunks {
					for _, line := range hunk.Lines {
						fmt.Println(renderDiffLine(line))
					}
				}
			}
			return nil
		},
	}
}

func renderDiffLine(line domain.DiffLine) string {
	switch line.Type {
	case domain.DiffLineAdded:
		return fmt.Sprintf("      %4d  +%s", line.NewLine, line.Content)
	case domain.DiffLineRemoved:
		return fmt.Sprintf("%4d        -%s", line.OldLine, line.Content)
	case domain.DiffLineContext:
		return fmt.Sprintf("%4d  %4d   %s", line.OldLine, line.NewLine, line.Content)
	default:
		return line.Content
	}
}
