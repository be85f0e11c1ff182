package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
	"github.com/promptdeck/promptdeck/pkg/logger"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List assets available in the shipped bundle",
	Long: `Catalog walks the asset bundle and lists every installable asset with
its category, version, and description. Assets with malformed metadata
are reported as warnings and skipped.`,
	RunE: runCatalog,
}

func init() {
	if err := ops.RegisterCommand("catalog", ops.GroupAsset, catalogCmd, "List available assets"); err != nil {
		panic(fmt.Sprintf("Failed to register catalog command: %v", err))
	}
}

func runCatalog(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	cat, err := eng.BuildCatalog()
	if err != nil {
		return err
	}

	for _, w := range cat.Warnings {
		logger.Warn("skipped malformed asset",
			logger.String("path", w.Path), logger.String("detail", w.Detail))
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		type item struct {
			Category    string `json:"category"`
			Name        string `json:"name"`
			Version     string `json:"version,omitempty"`
			Description string `json:"description,omitempty"`
		}
		items := make([]item, 0, cat.Len())
		for _, a := range cat.Assets() {
			items = append(items, item{
				Category:    string(a.Category),
				Name:        a.Name,
				Version:     a.Version,
				Description: a.Description,
			})
		}
		out, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	for _, a := range cat.Assets() {
		version := a.Version
		if version == "" {
			version = "-"
		}
		cmd.Printf("%-10s %-28s %-10s %s\n", a.Category, a.Name, version, a.Description)
	}
	cmd.Printf("\n%d asset(s), %d warning(s)\n", cat.Len(), len(cat.Warnings))
	return nil
}
