/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <task_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID. Ids of deleted tasks are not handed out again while a higher id exists.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		list, s, err := openList()
		if err != nil {
			return err
		}
		defer closeStore(s)

		removed, err := list.Delete(id)
		if err != nil {
			return err
		}
		newRenderer(cmd).Success("Task ID %d successfully DELETED: '%s'.", removed.ID, removed.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
