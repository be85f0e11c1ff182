package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/ops"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [category/name...]",
	Short: "Show install state of assets against each root",
	Long: `Status reconciles the catalog against every discovered root and reports,
per asset and root, whether the asset is absent, installed and identical,
modified locally, or at a different version. State is re-derived from the
filesystem on every invocation.`,
	RunE: runStatus,
}

func init() {
	if err := ops.RegisterCommand("status", ops.GroupAsset, statusCmd, "Show asset install state"); err != nil {
		panic(fmt.Sprintf("Failed to register status command: %v", err))
	}
}

type statusRow struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Root     string `json:"root"`
	Scope    string `json:"scope"`
	Status   string `json:"status"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine()
	if err != nil {
		return err
	}

	cat, err := eng.BuildCatalog()
	if err != nil {
		return err
	}
	roots, err := discoverRoots(eng)
	if err != nil {
		return err
	}

	var assets []*catalog.Asset
	if len(args) > 0 {
		assets, err = resolveAssets(cat, args)
		if err != nil {
			return err
		}
	} else {
		assets = cat.Assets()
	}

	var rows []statusRow
	for _, a := range assets {
		for _, r := range roots {
			st, err := eng.Status(a, r)
			if err != nil {
				return fmt.Errorf("reconciling %s against %s: %w", a.Key(), r.Path, err)
			}
			rows = append(rows, statusRow{
				Category: string(a.Category),
				Name:     a.Name,
				Root:     r.Path,
				Scope:    string(r.Scope),
				Status:   st.String(),
			})
		}
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	for _, row := range rows {
		cmd.Printf("%-10s %-28s %-9s %-14s %s\n",
			row.Category, row.Name, row.Scope, row.Status, row.Root)
	}
	return nil
}
