package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/internal/ops"
	"github.com/promptdeck/promptdeck/pkg/buildinfo"
	"github.com/promptdeck/promptdeck/pkg/exitcode"
	"github.com/promptdeck/promptdeck/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promptdeck",
		Short: "Manage prompt assets across local installation roots",
		Long: `Promptdeck catalogs the agent personas, commands, skills, modes, workflows,
and hook bundles shipped with the tool, discovers every installation root on
this machine, and reconciles what is installed against the catalog.

Examples:
   promptdeck catalog            # List available assets
   promptdeck status             # Show install state per asset and root
   promptdeck install skill/foo  # Install an asset into the nearest root
   promptdeck diff skill/foo     # Show drift between catalog and installed`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("promptdeck {{.Version}}\n")

	// Grouped help (Asset → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Asset Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupAsset) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(catalogCmd)
	cmd.AddCommand(rootsCmd)
	cmd.AddCommand(statusCmd)
	cmd.AddCommand(diffCmd)
	cmd.AddCommand(installCmd)
	cmd.AddCommand(uninstallCmd)
	cmd.AddCommand(updateCmd)
	cmd.AddCommand(initCmd)
	cmd.AddCommand(versionCmd)
	cmd.AddCommand(envinfoCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonOut, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	_ = logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(levelStr),
		UseColor:  !noColor,
		JSON:      jsonOut,
		Component: "promptdeck",
	})
}
