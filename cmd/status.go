package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/domain"
)

func newStatusCommand(svc *application.WorkingCopyService) *cobra.Command {
	var deep bool

	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show working-copy status with directory rollups",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			wcPath := workingCopyArg(args)

			var result *domain.StatusResult
			var err error
			if deep {
				result, err = svc.DeepStatus(command.Context(), wcPath)
			} else {
				result, err = svc.Status(command.Context(), wcPath)
			}
			if err != nil {
				return err
			}

			for _, entry := range result.Entries {
				if entry.Status == domain.StatusNormal {
					continue
				}
				fmt.Printf("%-12s %s\n", entry.Status, entry.Path)
			}

			if deep {
				printRollups(result)
			}
			fmt.Printf("Working copy %s at revision %d, %d entries\n",
				wcPath, result.Revision, len(result.Entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "Recurse through the full subtree")
	return cmd
}

// printRollups paints the directory rollups against the result's anchored
// root, which is the same basis the entries carry.
func printRollups(result *domain.StatusResult) {
	rollup := domain.RollupTree(result.Entries, result.Path)

	dirs := make([]string, 0, len(rollup))
	for dir, status := range rollup {
		if status != domain.StatusNormal {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		fmt.Printf("%-12s %s/\n", rollup[dir], dir)
	}
}
