package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/store"
	"github.com/josephgoksu/taskdeck/types"
)

// useTempWorkspace runs the test from an empty directory with no config.
func useTempWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

// resetFlags restores every flag to its default between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	appConfig = nil

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return b.String(), err
}

func loadJSON(t *testing.T, path string) []models.Task {
	t.Helper()
	s, err := store.NewFileTaskStore(nil, path, "json", nil)
	require.NoError(t, err)
	return s.Load()
}

func TestRootCmd_Help(t *testing.T) {
	useTempWorkspace(t)

	output, err := execute(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "taskdeck is a personal task tracker")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	for _, name := range []string{"add", "list", "done", "priority", "delete", "backup", "restore", "version", "config"} {
		assert.Contains(t, output, name)
	}
}

func TestVersion(t *testing.T) {
	useTempWorkspace(t)

	assert.Equal(t, "0.1.0", GetVersion())

	output, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, output, "taskdeck 0.1.0")
}

func TestCommands_Lifecycle(t *testing.T) {
	dir := useTempWorkspace(t)

	out, err := execute(t, "", "add", "Buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "Task ID 1 added successfully: 'Buy milk' (Priority: 2).")

	_, err = execute(t, "", "add", "Call bank", "-p", "1")
	require.NoError(t, err)

	out, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Call bank"), strings.Index(out, "Buy milk"))
	assert.NotContains(t, out, "\x1b[", "output to a buffer is never styled")

	_, err = execute(t, "", "done", "1")
	require.NoError(t, err)
	_, err = execute(t, "", "prio", "2", "low")
	require.NoError(t, err)

	assert.Equal(t, []models.Task{
		{ID: 1, Description: "Buy milk", Priority: models.PriorityMedium, Completed: true},
		{ID: 2, Description: "Call bank", Priority: models.PriorityLow},
	}, loadJSON(t, filepath.Join(dir, "tasks.json")))

	out, err = execute(t, "", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Task ID 1 successfully DELETED")

	out, err = execute(t, "", "add", "Email team", "-p", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Task ID 3 added", "deleted ids are not reused")
}

func TestCommands_ListPendingAndTable(t *testing.T) {
	useTempWorkspace(t)

	_, err := execute(t, "", "add", "Buy milk")
	require.NoError(t, err)
	_, err = execute(t, "", "add", "Call bank")
	require.NoError(t, err)
	_, err = execute(t, "", "done", "2")
	require.NoError(t, err)

	out, err := execute(t, "", "list", "--pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Call bank")

	out, err = execute(t, "", "list", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "Description")
	assert.Contains(t, out, "Medium")
}

func TestCommands_Errors(t *testing.T) {
	dir := useTempWorkspace(t)
	_, err := execute(t, "", "add", "Buy milk")
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		target  error
		message string
	}{
		{"bad priority", []string{"add", "x", "-p", "5"}, types.ErrValidation, "Error: Priority must be 1, 2, or 3."},
		{"word priority", []string{"priority", "1", "someday"}, types.ErrValidation, "Error: Unknown priority 'someday' (use 1-3 or high, medium, low)."},
		{"bad id", []string{"done", "abc"}, types.ErrValidation, "Error: Please enter a numerical ID."},
		{"missing id", []string{"done", "42"}, types.ErrNotFound, "Error: Task with ID 42 not found."},
		{"missing delete", []string{"delete", "7"}, types.ErrNotFound, "Error: Task with ID 7 not found."},
		{"blank description", []string{"add", "   "}, types.ErrValidation, "Error: Task description cannot be empty."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.message, userMessage(err))

			after, readErr := os.ReadFile(filepath.Join(dir, "tasks.json"))
			require.NoError(t, readErr)
			assert.Equal(t, before, after, "failed commands must not touch the data file")
		})
	}
}

func TestCommands_AlternateFormats(t *testing.T) {
	for _, tc := range []struct{ format, file string }{
		{"yaml", "todo.yaml"},
		{"toml", "todo.toml"},
		{"sqlite", "todo.db"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			dir := useTempWorkspace(t)

			_, err := execute(t, "", "--format", tc.format, "--file", tc.file, "add", "Buy milk", "-p", "1")
			require.NoError(t, err)
			assert.FileExists(t, filepath.Join(dir, tc.file))

			out, err := execute(t, "", "--format", tc.format, "--file", tc.file, "list")
			require.NoError(t, err)
			assert.Contains(t, out, "ID 1   | [ ] Buy milk (Prio: 1)")
		})
	}
}

func TestCommands_EnvironmentSelectsFile(t *testing.T) {
	dir := useTempWorkspace(t)
	t.Setenv("TASKDECK_DATA_FILE", "from-env.json")

	_, err := execute(t, "", "add", "Buy milk")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from-env.json"))
	assert.NoFileExists(t, filepath.Join(dir, "tasks.json"))
}

func TestCommands_BackupAndRestore(t *testing.T) {
	for _, format := range []string{"json", "sqlite"} {
		t.Run(format, func(t *testing.T) {
			dir := useTempWorkspace(t)
			backup := filepath.Join(dir, "backup."+format)

			_, err := execute(t, "", "--format", format, "add", "Buy milk")
			require.NoError(t, err)
			_, err = execute(t, "", "--format", format, "backup", backup)
			require.NoError(t, err)
			_, err = execute(t, "", "--format", format, "delete", "1")
			require.NoError(t, err)

			out, err := execute(t, "", "--format", format, "restore", backup)
			require.NoError(t, err)
			assert.Contains(t, out, "Restored 1 task(s)")

			out, err = execute(t, "", "--format", format, "list")
			require.NoError(t, err)
			assert.Contains(t, out, "Buy milk")
		})
	}
}

func TestCommands_RestoreRejectsGarbage(t *testing.T) {
	dir := useTempWorkspace(t)
	_, err := execute(t, "", "add", "Buy milk")
	require.NoError(t, err)
	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))

	_, err = execute(t, "", "restore", garbage)
	require.Error(t, err)
	assert.Len(t, loadJSON(t, filepath.Join(dir, "tasks.json")), 1)
}

func TestRootCmd_RunsMenu(t *testing.T) {
	dir := useTempWorkspace(t)

	out, err := execute(t, "2\nBuy milk\nx\n1\n3\n1\n0\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Welcome to taskdeck!")
	assert.Contains(t, out, "Error: Please enter a number (1, 2, or 3)")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, []models.Task{
		{ID: 1, Description: "Buy milk", Priority: models.PriorityHigh, Completed: true},
	}, loadJSON(t, filepath.Join(dir, "tasks.json")))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	useTempWorkspace(t)

	_, err := execute(t, "", "unknown-thing")
	assert.Error(t, err)
}

func TestConfigCmd_InitAndShow(t *testing.T) {
	dir := useTempWorkspace(t)

	out, err := execute(t, "", "--format", "yaml", "--file", "mine.yaml", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to .taskdeck.yaml")
	assert.FileExists(t, filepath.Join(dir, ".taskdeck.yaml"))

	_, err = execute(t, "", "config", "init")
	assert.Error(t, err, "init refuses to overwrite without --force")

	out, err = execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "data.file:   mine.yaml")
	assert.Contains(t, out, "data.format: yaml")
}

func TestCommand_Structure(t *testing.T) {
	tests := []struct {
		cmd     *cobra.Command
		use     string
		aliases []string
	}{
		{addCmd, "add <description...>", []string{"new"}},
		{listCmd, "list", []string{"ls"}},
		{doneCmd, "done <task_id>", []string{"complete"}},
		{priorityCmd, "priority <task_id> <1-3>", []string{"prio"}},
		{deleteCmd, "delete <task_id>", []string{"rm"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.use, tt.cmd.Use)
		assert.Equal(t, tt.aliases, tt.cmd.Aliases)
	}

	for _, name := range []string{"config", "verbose", "file", "format", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}
	p := addCmd.Flags().Lookup("priority")
	require.NotNil(t, p)
	assert.Equal(t, "2", p.DefValue)
}
