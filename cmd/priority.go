package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskdeck/internal/taskutil"
)

// priorityCmd represents the priority command
var priorityCmd = &cobra.Command{
	Use:     "priority <task_id> <1-3>",
	Aliases: []string{"prio"},
	Short:   "Change the priority of a task",
	Example: `  taskdeck priority 2 1
  taskdeck prio 2 high`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		priority, err := taskutil.NormalizePriority(args[1])
		if err != nil {
			return err
		}

		list, s, err := openList()
		if err != nil {
			return err
		}
		defer closeStore(s)

		t, err := list.Reprioritize(id, priority)
		if err != nil {
			return err
		}
		newRenderer(cmd).Success("Task ID %d priority updated to %d.", t.ID, int(t.Priority))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priorityCmd)
}
