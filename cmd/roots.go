package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
	"github.com/promptdeck/promptdeck/pkg/logger"
)

// rootsCmd represents the roots command
var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List discovered installation roots",
	Long: `Roots walks upward from the current directory looking for the marker
directory at each level, then appends the global root. Roots are listed
nearest scope first.`,
	RunE: runRoots,
}

func init() {
	if err := ops.RegisterCommand("roots", ops.GroupSupport, rootsCmd, "List installation roots"); err != nil {
		panic(fmt.Sprintf("Failed to register roots command: %v", err))
	}
}

func runRoots(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}
	roots, err := discoverRoots(eng)
	if err != nil {
		return err
	}

	if len(roots) == 0 {
		cmd.Println("No installation roots found.")
		cmd.Println("Run 'promptdeck init' to create one in the current project.")
		return nil
	}

	for _, r := range roots {
		cmd.Printf("%-9s %s (%d installed)\n", r.Scope, r.Path, len(r.Index))
		for _, w := range r.Warnings {
			logger.Warn("root partially readable",
				logger.String("root", r.Path), logger.String("detail", w))
		}
	}
	return nil
}
