/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskdeck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the taskdeck configuration",
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		source := cfg.Config
		if source == "" {
			source = "(none, using defaults and environment)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config file: %s\n", source)
		fmt.Fprintf(out, "data.file:   %s\n", cfg.Data.File)
		fmt.Fprintf(out, "data.format: %s\n", cfg.Data.Format)
		fmt.Fprintf(out, "log.crashDir: %s\n", cfg.Log.CrashDir)
		fmt.Fprintf(out, "verbose:     %t\n", cfg.Verbose)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the current settings to a config file",
	Long: `Write the effective settings (defaults, environment and flags) to a YAML
config file, ./.taskdeck.yaml by default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile()
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteConfigFile(path, *GetConfig(), force); err != nil {
			return err
		}
		newRenderer(cmd).Success("Configuration written to %s.", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
