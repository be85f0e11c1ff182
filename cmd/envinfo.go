package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
)

// envinfoCmd represents the envinfo command
var envinfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Show resolved configuration and environment",
	Long: `Envinfo prints the resolved tool configuration, the discovered
installation roots, and the catalog size. Useful when reporting issues.`,
	RunE: runEnvinfo,
}

func init() {
	if err := ops.RegisterCommand("envinfo", ops.GroupSupport, envinfoCmd, "Show environment information"); err != nil {
		panic(fmt.Sprintf("Failed to register envinfo command: %v", err))
	}
}

func runEnvinfo(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine()
	if err != nil {
		return err
	}

	cmd.Printf("platform:        %s/%s\n", runtime.GOOS, runtime.GOARCH)
	cmd.Printf("asset dir:       %s\n", cfg.AssetDir)
	cmd.Printf("marker dir:      %s\n", cfg.MarkerDir)
	cmd.Printf("global root:     %s\n", cfg.GlobalRoot)
	cmd.Printf("ignore patterns: %s\n", strings.Join(cfg.IgnorePatterns, ", "))

	if cat, err := eng.BuildCatalog(); err == nil {
		cmd.Printf("catalog:         %d asset(s), %d warning(s)\n", cat.Len(), len(cat.Warnings))
	} else {
		cmd.Printf("catalog:         unavailable (%v)\n", err)
	}

	roots, err := discoverRoots(eng)
	if err != nil {
		return err
	}
	cmd.Printf("roots:           %d discovered\n", len(roots))
	for _, r := range roots {
		cmd.Printf("  %-9s %s\n", r.Scope, r.Path)
	}
	return nil
}
