package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
	"github.com/promptdeck/promptdeck/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show promptdeck version",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Include module build information")
	if err := ops.RegisterCommand("version", ops.GroupSupport, versionCmd, "Show version"); err != nil {
		panic(fmt.Sprintf("Failed to register version command: %v", err))
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	cmd.Printf("promptdeck %s\n", buildinfo.BinaryVersion)
	if extended, _ := cmd.Flags().GetBool("extended"); extended {
		if mod := buildinfo.ModuleVersion(); mod != "" {
			cmd.Printf("module: %s\n", mod)
		}
	}
	return nil
}
