package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <category/name>",
	Short: "Show drift between catalog and installed content",
	Long: `Diff renders a unified diff between an asset's canonical content and its
installed counterpart in the target root. Directory assets are diffed per
logical file; binary content is reported, not diffed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	addTargetFlags(diffCmd)
	if err := ops.RegisterCommand("diff", ops.GroupAsset, diffCmd, "Show catalog/installed drift"); err != nil {
		panic(fmt.Sprintf("Failed to register diff command: %v", err))
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	cat, err := eng.BuildCatalog()
	if err != nil {
		return err
	}
	assets, err := resolveAssets(cat, args)
	if err != nil {
		return err
	}
	root, err := pickRoot(cmd, eng, cfg)
	if err != nil {
		return err
	}

	text, err := eng.Diff(assets[0], root)
	if err != nil {
		return err
	}
	if text == "" {
		cmd.Printf("%s is identical in %s\n", assets[0].Key(), root.Path)
		return nil
	}
	cmd.Print(text)
	return nil
}
