package store

import (
	"fmt"
	"math"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/types"
)

// TaskStore defines the interface for task persistence.
// The whole collection is read and written at once; there are no
// per-task operations at this layer.
type TaskStore interface {
	// Load reads the persisted collection. A missing, unreadable or
	// malformed store yields an empty collection rather than an error;
	// the underlying read failure is logged, not returned.
	Load() []models.Task

	// Save replaces the persisted collection with tasks. On success the
	// store reflects tasks exactly. Failures are returned as a
	// *types.StorageError with Op "write".
	Save(tasks []models.Task) error

	// Path returns the location of the backing file.
	Path() string

	// Close releases any resources held by the store, such as database
	// connections. It should be called when the store is no longer needed.
	Close() error
}

// Archiver is implemented by stores that can copy their backing file out
// and replace it from a copy.
type Archiver interface {
	// Backup copies the persisted collection to path.
	Backup(path string) error
	// Restore replaces the persisted collection with the one at path and
	// returns it. Unlike Load, an unreadable or malformed source is an error.
	Restore(path string) ([]models.Task, error)
}

// GenerateID returns the next identifier for a new task: one more than the
// highest id in tasks, or 1 when tasks is empty. If the highest id is
// already math.MaxInt there is no next id and a *types.ValidationError is
// returned.
func GenerateID(tasks []models.Task) (int, error) {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	if maxID == math.MaxInt {
		return 0, types.NewValidationError("id", fmt.Sprintf("no task IDs left: the highest ID is already %d", maxID))
	}
	return maxID + 1, nil
}
