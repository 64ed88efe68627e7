// Package task implements the mutations a user can apply to the task
// collection and the ordering used to display it.
package task

import (
	"slices"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/store"
	"github.com/josephgoksu/taskdeck/types"
)

// Saver persists the full collection. store.TaskStore satisfies it.
type Saver interface {
	Save(tasks []models.Task) error
}

// List owns the in-memory task collection for a session and persists it
// after every successful mutation.
//
// A mutation is applied in memory before it is saved. If Save fails, the
// error is returned and the change stays applied but unpersisted until the
// next successful save; callers should report the failure to the user.
// Validation and not-found failures never touch the collection and never
// save.
type List struct {
	tasks []models.Task
	saver Saver
}

// NewList wraps tasks, typically the result of TaskStore.Load.
func NewList(tasks []models.Task, saver Saver) *List {
	return &List{
		tasks: slices.Clone(tasks),
		saver: saver,
	}
}

// Tasks returns a copy of the collection in insertion order.
func (l *List) Tasks() []models.Task {
	return slices.Clone(l.tasks)
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Get returns the task with the given id.
func (l *List) Get(id int) (models.Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, &types.NotFoundError{ID: id}
	}
	return l.tasks[i], nil
}

// Add appends a new pending task with the next free id and saves.
func (l *List) Add(description string, priority models.Priority) (models.Task, error) {
	id, err := store.GenerateID(l.tasks)
	if err != nil {
		return models.Task{}, err
	}
	t, err := models.NewTask(id, description, priority)
	if err != nil {
		return models.Task{}, err
	}

	l.tasks = append(l.tasks, t)
	return t, l.Save()
}

// Complete marks the task as done and saves. Completion is one-way.
func (l *List) Complete(id int) (models.Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, &types.NotFoundError{ID: id}
	}

	l.tasks[i].Completed = true
	return l.tasks[i], l.Save()
}

// Reprioritize changes the priority of a task, complete or not, and saves.
func (l *List) Reprioritize(id int, priority models.Priority) (models.Task, error) {
	if !priority.Valid() {
		return models.Task{}, types.NewValidationError("priority", "priority must be 1, 2, or 3")
	}
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, &types.NotFoundError{ID: id}
	}

	l.tasks[i].Priority = priority
	return l.tasks[i], l.Save()
}

// Delete removes the task and saves. The removed task is returned.
func (l *List) Delete(id int) (models.Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, &types.NotFoundError{ID: id}
	}

	removed := l.tasks[i]
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return removed, l.Save()
}

// Save writes the whole collection through the saver.
func (l *List) Save() error {
	if l.saver == nil {
		return nil
	}
	return l.saver.Save(slices.Clone(l.tasks))
}

func (l *List) indexOf(id int) int {
	return slices.IndexFunc(l.tasks, func(t models.Task) bool {
		return t.ID == id
	})
}
