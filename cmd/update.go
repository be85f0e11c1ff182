package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/installer"
	"github.com/promptdeck/promptdeck/internal/ops"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <category/name>...",
	Short: "Replace installed assets with the catalog version",
	Long: `Update replaces whatever occupies each asset's slot with the catalog
version. It is uninstall-then-install reported as a single operation per
asset.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpdate,
}

func init() {
	addTargetFlags(updateCmd)
	if err := ops.RegisterCommand("update", ops.GroupAsset, updateCmd, "Update installed assets"); err != nil {
		panic(fmt.Sprintf("Failed to register update command: %v", err))
	}
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, args, installer.ActionUpdate)
}
