package task

import (
	"errors"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/store"
	"github.com/josephgoksu/taskdeck/types"
)

// recordingSaver counts saves and keeps the last snapshot.
type recordingSaver struct {
	calls int
	last  []models.Task
	err   error
}

func (r *recordingSaver) Save(tasks []models.Task) error {
	r.calls++
	r.last = tasks
	return r.err
}

func newFileList(t *testing.T) (*List, *store.FileTaskStore, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	s, err := store.NewFileTaskStore(fs, "tasks.json", "json", nil)
	require.NoError(t, err)
	return NewList(s.Load(), s), s, fs
}

func TestList_Scenario(t *testing.T) {
	list, s, _ := newFileList(t)

	milk, err := list.Add("Buy milk", models.PriorityMedium)
	require.NoError(t, err)
	assert.Equal(t, 1, milk.ID)
	assert.False(t, milk.Completed)

	bank, err := list.Add("Call bank", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 2, bank.ID)

	_, err = list.Delete(1)
	require.NoError(t, err)

	email, err := list.Add("Email team", models.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, 3, email.ID, "deleted ids must not be reused")

	assert.ElementsMatch(t, []models.Task{
		{ID: 2, Description: "Call bank", Priority: models.PriorityHigh},
		{ID: 3, Description: "Email team", Priority: models.PriorityLow},
	}, s.Load())
}

func TestList_IDsStrictlyIncrease(t *testing.T) {
	list := NewList(nil, &recordingSaver{})

	prev := 0
	for i := range 10 {
		task, err := list.Add("task", models.PriorityMedium)
		require.NoError(t, err)
		assert.Greater(t, task.ID, prev)
		prev = task.ID

		if i%3 == 0 {
			_, err := list.Delete(task.ID - 1)
			if err != nil {
				assert.ErrorIs(t, err, types.ErrNotFound)
			}
		}
	}
}

func TestList_DeletingHighestIDFreesIt(t *testing.T) {
	list := NewList(nil, &recordingSaver{})
	for _, d := range []string{"Buy milk", "Call bank", "Email team"} {
		_, err := list.Add(d, models.PriorityMedium)
		require.NoError(t, err)
	}

	removed, err := list.Delete(3)
	require.NoError(t, err)
	assert.Equal(t, "Email team", removed.Description)

	next, err := list.Add("Water plants", models.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, 3, next.ID, "ids follow the highest surviving id")

	_, err = list.Delete(1)
	require.NoError(t, err)
	next, err = list.Add("Pay rent", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 4, next.ID, "ids below the highest are never reused")
}

func TestList_AddWhenIDsExhausted(t *testing.T) {
	saver := &recordingSaver{}
	list := NewList([]models.Task{{ID: math.MaxInt, Description: "Last", Priority: models.PriorityLow}}, saver)

	_, err := list.Add("One more", models.PriorityMedium)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
	assert.Equal(t, 1, list.Len())
	assert.Zero(t, saver.calls)
}

func TestList_AddValidation(t *testing.T) {
	tests := []struct {
		name        string
		description string
		priority    models.Priority
		field       string
	}{
		{"empty description", "", models.PriorityHigh, "description"},
		{"blank description", "   \t", models.PriorityHigh, "description"},
		{"priority zero", "Buy milk", 0, "priority"},
		{"priority four", "Buy milk", 4, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &recordingSaver{}
			list := NewList([]models.Task{{ID: 1, Description: "Existing", Priority: models.PriorityLow}}, saver)

			_, err := list.Add(tt.description, tt.priority)

			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 1, list.Len())
			assert.Zero(t, saver.calls, "rejected add must not persist")
		})
	}
}

func TestList_AddEmptyLeavesStorageUntouched(t *testing.T) {
	list, s, fs := newFileList(t)
	_, err := list.Add("Buy milk", models.PriorityMedium)
	require.NoError(t, err)

	before, err := afero.ReadFile(fs, s.Path())
	require.NoError(t, err)

	_, err = list.Add("", models.PriorityHigh)
	require.ErrorIs(t, err, types.ErrValidation)

	after, err := afero.ReadFile(fs, s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, list.Len())
}

func TestList_Complete(t *testing.T) {
	saver := &recordingSaver{}
	list := NewList([]models.Task{
		{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium},
		{ID: 2, Description: "Call bank", Priority: models.PriorityHigh},
	}, saver)

	task, err := list.Complete(2)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, 1, saver.calls)
	assert.True(t, saver.last[1].Completed)
	assert.False(t, saver.last[0].Completed)

	// completing again is allowed and saves again
	_, err = list.Complete(2)
	require.NoError(t, err)
	assert.Equal(t, 2, saver.calls)
}

func TestList_NotFoundLeavesCollectionUnchanged(t *testing.T) {
	initial := []models.Task{
		{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium},
		{ID: 4, Description: "Call bank", Priority: models.PriorityHigh, Completed: true},
	}

	ops := map[string]func(l *List) error{
		"complete": func(l *List) error { _, err := l.Complete(99); return err },
		"reprioritize": func(l *List) error {
			_, err := l.Reprioritize(99, models.PriorityLow)
			return err
		},
		"delete": func(l *List) error { _, err := l.Delete(99); return err },
		"get":    func(l *List) error { _, err := l.Get(99); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			saver := &recordingSaver{}
			list := NewList(initial, saver)

			err := op(list)

			var nf *types.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, 99, nf.ID)
			assert.Equal(t, initial, list.Tasks())
			assert.Zero(t, saver.calls)
		})
	}
}

func TestList_CompleteMissingLeavesFileUnchanged(t *testing.T) {
	list, s, fs := newFileList(t)
	_, err := list.Add("Buy milk", models.PriorityMedium)
	require.NoError(t, err)
	before, err := afero.ReadFile(fs, s.Path())
	require.NoError(t, err)

	_, err = list.Complete(42)
	require.ErrorIs(t, err, types.ErrNotFound)

	after, err := afero.ReadFile(fs, s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestList_Reprioritize(t *testing.T) {
	saver := &recordingSaver{}
	list := NewList([]models.Task{
		{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium, Completed: true},
	}, saver)

	task, err := list.Reprioritize(1, models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.True(t, task.Completed, "priority can change on completed tasks")
	assert.Equal(t, 1, saver.calls)

	_, err = list.Reprioritize(1, 7)
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, 1, saver.calls)

	// priority is checked before the id
	_, err = list.Reprioritize(99, 0)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestList_Delete(t *testing.T) {
	saver := &recordingSaver{}
	list := NewList([]models.Task{
		{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium},
		{ID: 2, Description: "Call bank", Priority: models.PriorityHigh},
		{ID: 3, Description: "Email team", Priority: models.PriorityLow},
	}, saver)

	removed, err := list.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "Call bank", removed.Description)
	assert.Equal(t, []int{1, 3}, ids(list.Tasks()))
	assert.Equal(t, []int{1, 3}, ids(saver.last))
}

func TestList_WriteFailureKeepsMutation(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := store.NewFileTaskStore(afero.NewReadOnlyFs(fs), "tasks.json", "json", nil)
	require.NoError(t, err)
	list := NewList(nil, s)

	task, err := list.Add("Buy milk", models.PriorityMedium)

	require.ErrorIs(t, err, types.ErrStorageWrite)
	var serr *types.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "tasks.json", serr.Path)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, 1, list.Len(), "mutation stays applied in memory")

	exists, err := afero.Exists(fs, "tasks.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestList_SaveErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	list := NewList([]models.Task{{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium}}, &recordingSaver{err: boom})

	_, err := list.Complete(1)
	assert.ErrorIs(t, err, boom)

	task, err := list.Get(1)
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestList_TasksReturnsCopy(t *testing.T) {
	list := NewList([]models.Task{{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium}}, nil)

	tasks := list.Tasks()
	tasks[0].Description = "changed"

	got, err := list.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Description)
	assert.NoError(t, list.Save(), "nil saver is a no-op")
}

func ids(tasks []models.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
