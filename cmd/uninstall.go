package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/installer"
	"github.com/promptdeck/promptdeck/internal/ops"
)

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall <category/name>...",
	Short: "Remove installed assets from a root",
	Long: `Uninstall removes one or more assets from the target root. Removing a
hook also drops its registration from the root's settings document while
leaving unrelated entries untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUninstall,
}

func init() {
	addTargetFlags(uninstallCmd)
	if err := ops.RegisterCommand("uninstall", ops.GroupAsset, uninstallCmd, "Remove assets from a root"); err != nil {
		panic(fmt.Sprintf("Failed to register uninstall command: %v", err))
	}
}

func runUninstall(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine()
	if err != nil {
		return err
	}
	root, err := pickRoot(cmd, eng, cfg)
	if err != nil {
		return err
	}

	// Uninstall does not require the asset to still exist in the
	// catalog; the key alone identifies the installed slot.
	plan := make([]installer.PlannedOp, 0, len(args))
	for _, arg := range args {
		ref, err := catalog.ParseRef(arg)
		if err != nil {
			return err
		}
		plan = append(plan, installer.PlannedOp{
			Action: installer.ActionUninstall,
			Key:    catalog.Key{Category: ref.Category, Name: ref.Name},
			Root:   root,
		})
	}

	results := eng.RunBulk(plan)
	printResults(cmd, results)
	return nil
}
