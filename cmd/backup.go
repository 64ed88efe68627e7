package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskdeck/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Copy the task data file to destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, s, err := openArchiver()
		if err != nil {
			return err
		}
		defer closeStore(s)

		if err := a.Backup(args[0]); err != nil {
			return err
		}
		newRenderer(cmd).Success("Tasks from %s backed up to %s.", s.Path(), args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Replace the task data with a backup",
	Long: `Replace the current tasks with the ones stored in source, which must be in
the configured data format. A source that cannot be read as a task list is
rejected and the current data is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, s, err := openArchiver()
		if err != nil {
			return err
		}
		defer closeStore(s)

		tasks, err := a.Restore(args[0])
		if err != nil {
			return err
		}
		newRenderer(cmd).Success("Restored %d task(s) from %s into %s.", len(tasks), args[0], s.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func openArchiver() (store.Archiver, store.TaskStore, error) {
	s, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	a, ok := s.(store.Archiver)
	if !ok {
		closeStore(s)
		return nil, nil, fmt.Errorf("the %s store does not support backup and restore", GetConfig().Data.Format)
	}
	return a, s, nil
}
