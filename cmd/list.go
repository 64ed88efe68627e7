package cmd

import (
	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskdeck/internal/task"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, pending first, then by priority",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("table", false, "render as a table")
	listCmd.Flags().Bool("pending", false, "only show tasks that are not completed")
	listCmd.Flags().Int("width", 60, "maximum column width in table mode (0 = unlimited)")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer closeStore(s)

	tasks := task.SortForDisplay(s.Load())
	if pending, _ := cmd.Flags().GetBool("pending"); pending {
		kept := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	r := newRenderer(cmd)
	if asTable, _ := cmd.Flags().GetBool("table"); asTable && len(tasks) > 0 {
		width, _ := cmd.Flags().GetInt("width")
		r.Println(r.TaskTable(tasks, width))
		return nil
	}
	r.Tasks(tasks)
	return nil
}
