/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/taskdeck/internal/config"
	"github.com/josephgoksu/taskdeck/internal/logger"
	"github.com/josephgoksu/taskdeck/internal/menu"
	"github.com/josephgoksu/taskdeck/internal/task"
	"github.com/josephgoksu/taskdeck/internal/ui"
	"github.com/josephgoksu/taskdeck/store"
	"github.com/josephgoksu/taskdeck/types"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// noColor disables styled output even on a terminal.
	noColor bool
	// version is the application version.
	version = "0.1.0"

	appConfig *types.AppConfig
	appLogger = logger.Discard()
)

// flagBindings maps viper keys to persistent flag names.
var flagBindings = map[string]string{
	"verbose":     "verbose",
	"data.file":   "file",
	"data.format": "format",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck is a personal task tracker for the terminal.",
	Long: `taskdeck keeps a prioritized to-do list in a local file.

Run it without arguments for the interactive menu, or use the subcommands
to add, complete, reprioritize and delete tasks from scripts.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
	RunE:              runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		HandleFatalError(userMessage(err), err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskdeck.yaml or $HOME/.taskdeck.yaml)")
	pf.BoolP("verbose", "v", false, "enable verbose output")
	pf.StringP("file", "f", "", fmt.Sprintf("task data file (default %q)", store.DefaultDataFile))
	pf.String("format", "", "task data format: json, yaml, toml or sqlite (default \"json\")")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initApp loads configuration and sets up logging before any command runs.
func initApp(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for key, name := range flagBindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.Load(v, config.Options{ConfigFile: cfgFile})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg
	appLogger = logger.New(logger.Options{Verbose: cfg.Verbose, Output: cmd.ErrOrStderr()})

	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())
	logger.SetDataFile(cfg.Data.File)
	logger.SetCrashDir(cfg.Log.CrashDir)

	if cfg.Config != "" {
		appLogger.Debug("using config file", "path", cfg.Config)
	}
	appLogger.Debug("configuration loaded", "file", cfg.Data.File, "format", cfg.Data.Format)
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *types.AppConfig {
	if appConfig == nil {
		return &types.AppConfig{Data: types.DataConfig{File: store.DefaultDataFile, Format: store.DefaultDataFormat}}
	}
	return appConfig
}

// GetLogger returns the logger configured for this run.
func GetLogger() *log.Logger {
	return appLogger
}

// GetStore initializes and returns the task store selected by the configuration.
func GetStore() (store.TaskStore, error) {
	cfg := GetConfig()
	s, err := store.New(cfg.Data, nil, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", cfg.Data.File, err)
	}
	return s, nil
}

// openList loads the task list from the configured store. Callers must
// close the returned store.
func openList() (*task.List, store.TaskStore, error) {
	s, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	return task.NewList(s.Load(), s), s, nil
}

func closeStore(s store.TaskStore) {
	if err := s.Close(); err != nil {
		appLogger.Warn("failed to close task store", "err", err)
	}
}

func newRenderer(cmd *cobra.Command) *ui.Renderer {
	out := cmd.OutOrStdout()
	return ui.NewRenderer(out, !noColor && ui.IsInteractive(out))
}

func runMenu(cmd *cobra.Command, _ []string) error {
	list, s, err := openList()
	if err != nil {
		return err
	}
	defer closeStore(s)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return menu.New(cmd.InOrStdin(), newRenderer(cmd), list, appLogger).Run(ctx)
}
