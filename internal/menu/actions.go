package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/josephgoksu/taskdeck/types"
)

// view is a no-op: the list is printed at the top of every loop iteration.
func (m *Menu) view(context.Context) error {
	return nil
}

func (m *Menu) add(ctx context.Context) error {
	m.ui.Println()
	m.ui.Println("--- ADD NEW TASK ---")

	description, err := m.prompt.line(ctx, "Enter task description: ")
	if err != nil {
		return err
	}
	if description == "" {
		return types.NewValidationError("description", "task description cannot be empty")
	}

	priority, err := m.prompt.priority(ctx, "Enter priority (1=High, 2=Medium, 3=Low): ", m.invalidPriority)
	if err != nil {
		return err
	}

	t, err := m.list.Add(description, priority)
	if err != nil && !errors.Is(err, types.ErrStorageWrite) {
		return err
	}
	m.ui.Success("Task ID %d added successfully: '%s' (Priority: %d).", t.ID, t.Description, int(t.Priority))
	return err
}

func (m *Menu) complete(ctx context.Context) error {
	if m.listEmpty() {
		return nil
	}
	id, err := m.prompt.id(ctx, "Enter ID of the task to MARK AS COMPLETE: ", m.invalidID)
	if err != nil {
		return err
	}

	_, err = m.list.Complete(id)
	if err != nil && !errors.Is(err, types.ErrStorageWrite) {
		return err
	}
	m.ui.Success("Task ID %d marked as COMPLETE.", id)
	return err
}

func (m *Menu) reprioritize(ctx context.Context) error {
	if m.listEmpty() {
		return nil
	}
	id, err := m.prompt.id(ctx, "Enter ID of the task to CHANGE PRIORITY: ", m.invalidID)
	if err != nil {
		return err
	}
	current, err := m.list.Get(id)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("Enter new priority for ID %d (Current: %d) (1=High, 2=Medium, 3=Low): ", id, int(current.Priority))
	priority, err := m.prompt.priority(ctx, label, m.invalidPriority)
	if err != nil {
		return err
	}

	t, err := m.list.Reprioritize(id, priority)
	if err != nil && !errors.Is(err, types.ErrStorageWrite) {
		return err
	}
	m.ui.Success("Task ID %d priority updated to %d.", t.ID, int(t.Priority))
	return err
}

func (m *Menu) delete(ctx context.Context) error {
	if m.listEmpty() {
		return nil
	}
	id, err := m.prompt.id(ctx, "Enter ID of the task to DELETE: ", m.invalidID)
	if err != nil {
		return err
	}

	_, err = m.list.Delete(id)
	if err != nil && !errors.Is(err, types.ErrStorageWrite) {
		return err
	}
	m.ui.Success("Task ID %d successfully DELETED.", id)
	return err
}

// listEmpty shows the empty-list notice when there is nothing to pick an ID from.
func (m *Menu) listEmpty() bool {
	if m.list.Len() > 0 {
		return false
	}
	m.ui.Tasks(nil)
	return true
}

func (m *Menu) invalidID() {
	m.ui.Error("Invalid input. Please enter a numerical ID.")
}

func (m *Menu) invalidPriority(reason string) {
	m.ui.Error("%s", capitalize(reason))
}
