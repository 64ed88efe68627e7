package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskdeck/types"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return strings.TrimSpace(buf.String())
}

func TestPrintError(t *testing.T) {
	orig := appConfig
	t.Cleanup(func() { appConfig = orig })

	cause := errors.New("write tasks.json: permission denied")
	tests := []struct {
		name    string
		verbose bool
		err     error
		want    string
	}{
		{"quiet", false, cause, "Error: could not save tasks to tasks.json."},
		{"verbose shows cause", true, cause, "Error: write tasks.json: permission denied"},
		{"verbose without cause", true, nil, "Error: could not save tasks to tasks.json."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appConfig = &types.AppConfig{Verbose: tt.verbose}
			out := captureStderr(t, func() {
				PrintError("Error: could not save tasks to tasks.json.", tt.err)
			})
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  types.NewValidationError("description", "task description cannot be empty"),
			want: "Error: Task description cannot be empty.",
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("complete: %w", &types.NotFoundError{ID: 4}),
			want: "Error: Complete: task with ID 4 not found.",
		},
		{
			name: "write failure",
			err:  types.NewStorageWriteError("tasks.json", errors.New("permission denied")),
			want: "Error: could not save tasks to tasks.json.",
		},
		{
			name: "other",
			err:  errors.New("failed to load configuration"),
			want: "Error: Failed to load configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(tt.err))
		})
	}
}
