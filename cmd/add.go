/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskdeck/internal/taskutil"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <description...>",
	Aliases: []string{"new"},
	Short:   "Add a new task",
	Long:    `Add a new pending task. The description is every remaining argument joined by spaces.`,
	Example: `  taskdeck add Buy milk
  taskdeck add "Call bank" --priority 1
  taskdeck add Water plants -p low`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("priority")
		priority, err := taskutil.NormalizePriority(raw)
		if err != nil {
			return err
		}

		list, s, err := openList()
		if err != nil {
			return err
		}
		defer closeStore(s)

		t, err := list.Add(strings.Join(args, " "), priority)
		if err != nil {
			return err
		}
		newRenderer(cmd).Success("Task ID %d added successfully: '%s' (Priority: %d).", t.ID, t.Description, int(t.Priority))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("priority", "p", "2", "priority: 1/high, 2/medium or 3/low")
}
