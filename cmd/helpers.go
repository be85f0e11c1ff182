package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/engine"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/pkg/config"
)

// loadEngine resolves configuration for the current directory and wires
// up the engine. Every command goes through this so repeated invocations
// always reflect the live filesystem.
func loadEngine() (*engine.Engine, *config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving working directory: %w", err)
	}
	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(cfg), cfg, nil
}

// discoverRoots runs a fresh discovery pass from the current directory.
func discoverRoots(eng *engine.Engine) ([]*scope.Root, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	return eng.DiscoverRoots(workDir)
}

// pickRoot selects the target root from --root / --scope flags. With no
// flags the nearest discovered root wins.
func pickRoot(cmd *cobra.Command, eng *engine.Engine, cfg *config.Config) (*scope.Root, error) {
	return pickRootFromFlags(cmd.Flags(), eng, cfg)
}

func pickRootFromFlags(flags *pflag.FlagSet, eng *engine.Engine, cfg *config.Config) (*scope.Root, error) {
	roots, err := discoverRoots(eng)
	if err != nil {
		return nil, err
	}

	if rootPath, _ := flags.GetString("root"); rootPath != "" {
		for _, r := range roots {
			if r.Path == rootPath {
				return r, nil
			}
		}
		return scope.ReadRoot(rootPath, scope.ScopeProject, cfg.IgnorePatterns), nil
	}

	tier, _ := flags.GetString("scope")
	switch tier {
	case "", "nearest":
		if len(roots) == 0 {
			return nil, fmt.Errorf("no installation roots found. Run 'promptdeck init' to create one")
		}
		return roots[0], nil
	case "global":
		for _, r := range roots {
			if r.Scope == scope.ScopeGlobal {
				return r, nil
			}
		}
		return nil, fmt.Errorf("no global root discovered")
	case "project":
		for _, r := range roots {
			if r.Scope == scope.ScopeProject {
				return r, nil
			}
		}
		return nil, fmt.Errorf("no project root found. Run 'promptdeck init' to create one")
	default:
		return nil, fmt.Errorf("unknown scope %q (expected project, global, or nearest)", tier)
	}
}

// resolveAssets maps category/name arguments onto catalog assets.
func resolveAssets(cat *catalog.Catalog, args []string) ([]*catalog.Asset, error) {
	assets := make([]*catalog.Asset, 0, len(args))
	for _, arg := range args {
		ref, err := catalog.ParseRef(arg)
		if err != nil {
			return nil, err
		}
		a, ok := cat.Lookup(catalog.Key{Category: ref.Category, Name: ref.Name})
		if !ok {
			return nil, fmt.Errorf("asset %s not found in catalog", arg)
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// addTargetFlags registers the root-selection flags shared by the
// mutating commands.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("scope", "nearest", "Target root scope (project|global|nearest)")
	cmd.Flags().String("root", "", "Target root path (overrides --scope)")
}
