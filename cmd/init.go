package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an installation root in the current project",
	Long: `Init creates the marker directory in the current working directory so
it becomes the nearest installation root for subsequent installs.`,
	RunE: runInit,
}

func init() {
	if err := ops.RegisterCommand("init", ops.GroupSupport, initCmd, "Create a project root"); err != nil {
		panic(fmt.Sprintf("Failed to register init command: %v", err))
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	marker := filepath.Join(workDir, cfg.MarkerDir)
	if _, err := os.Stat(marker); err == nil {
		cmd.Printf("Installation root already exists at %s\n", marker)
		return nil
	}
	if err := os.MkdirAll(marker, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", marker, err)
	}
	cmd.Printf("Created installation root at %s\n", marker)
	return nil
}
