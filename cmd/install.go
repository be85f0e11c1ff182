package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/installer"
	"github.com/promptdeck/promptdeck/internal/ops"
	"github.com/promptdeck/promptdeck/pkg/exitcode"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install <category/name>...",
	Short: "Install assets into an installation root",
	Long: `Install writes one or more assets into the target root. Each asset is
installed atomically: content is staged inside the root and moved into
place only once every write has succeeded. Hook assets additionally merge
their registration into the root's settings document.

One asset failing does not abort the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	addTargetFlags(installCmd)
	if err := ops.RegisterCommand("install", ops.GroupAsset, installCmd, "Install assets into a root"); err != nil {
		panic(fmt.Sprintf("Failed to register install command: %v", err))
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, args, installer.ActionInstall)
}

// runBatch plans one operation per argument against the selected root
// and drives them through the bulk coordinator.
func runBatch(cmd *cobra.Command, args []string, action installer.Action) error {
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

	plan := make([]installer.PlannedOp, 0, len(assets))
	for _, a := range assets {
		plan = append(plan, installer.PlannedOp{Action: action, Asset: a, Root: root})
	}

	results := eng.RunBulk(plan)
	printResults(cmd, results)
	return nil
}

// printResults reports one line per result and exits with a partial
// failure code if anything failed.
func printResults(cmd *cobra.Command, results []installer.Result) {
	failures := 0
	for _, r := range results {
		marker := "ok"
		switch r.Outcome {
		case installer.OutcomeFailed:
			marker = "failed"
			failures++
		case installer.OutcomeSkipped:
			marker = "skipped"
		}
		cmd.Printf("%-8s %-28s %s\n", marker, r.Key, r.Message)
	}
	if failures > 0 {
		cmd.Printf("\n%d of %d operation(s) failed\n", failures, len(results))
		os.Exit(exitcode.PartialFailure)
	}
}
