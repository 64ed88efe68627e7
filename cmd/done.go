package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskdeck/types"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <task_id>",
	Aliases: []string{"complete"},
	Short:   "Mark a task as done",
	Long:    `Mark a task as completed. Completion is one-way; completed tasks stay in the list, struck through.`,
	Example: `  taskdeck done 3`,
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

		if _, err := list.Complete(id); err != nil {
			return err
		}
		newRenderer(cmd).Success("Task ID %d marked as COMPLETE.", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

// parseID parses a task id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, types.NewValidationError("id", "please enter a numerical ID")
	}
	return id, nil
}
