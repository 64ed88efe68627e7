package task

import (
	"cmp"
	"slices"

	"github.com/josephgoksu/taskdeck/models"
)

// SortForDisplay returns a sorted copy of tasks: incomplete before
// complete, then by priority (High first), then by id. The input slice is
// not modified.
func SortForDisplay(tasks []models.Task) []models.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, compareForDisplay)
	return sorted
}

func compareForDisplay(a, b models.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	return cmp.Or(
		cmp.Compare(a.Priority, b.Priority),
		cmp.Compare(a.ID, b.ID),
	)
}
