package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/josephgoksu/taskdeck/models"
)

const rule = "============================================="

// Renderer writes task listings and status messages to Out.
type Renderer struct {
	Out    io.Writer
	Styles Styles
	lg     *lipgloss.Renderer
}

// NewRenderer creates a renderer for out. With color disabled every style
// renders as plain text.
func NewRenderer(out io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(out)
	if !color {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{Out: out, Styles: NewStyles(lg), lg: lg}
}

// SetColorProfile overrides the detected color profile.
func (r *Renderer) SetColorProfile(p termenv.Profile) {
	r.lg.SetColorProfile(p)
	r.Styles = NewStyles(r.lg)
}

// IsInteractive reports whether w is a terminal.
// Styling is skipped when output is piped or redirected.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// TaskLine formats a single task as it appears in listings.
func (r *Renderer) TaskLine(t models.Task) string {
	status := "[ ]"
	if t.Completed {
		status = "[X]"
	}
	line := fmt.Sprintf("ID %-3d | %s %s (Prio: %d)", t.ID, status, t.Description, int(t.Priority))
	return r.Styles.Task(t).Render(line)
}

// Tasks writes the listing for tasks, which must already be in display order.
func (r *Renderer) Tasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, r.Styles.Subtle.Render("--- Your To-Do List is empty! ---"))
		return
	}

	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, rule)
	fmt.Fprintln(r.Out, r.Styles.Title.Render("           Task Manager To-Do List           "))
	fmt.Fprintln(r.Out, rule)
	for _, t := range tasks {
		fmt.Fprintln(r.Out, r.TaskLine(t))
	}
	fmt.Fprintln(r.Out, rule)
	fmt.Fprintln(r.Out)
}

// Success prints a confirmation message.
func (r *Renderer) Success(format string, args ...any) {
	fmt.Fprintln(r.Out, r.Styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message prefixed with "Error: ".
func (r *Renderer) Error(format string, args ...any) {
	fmt.Fprintln(r.Out, r.Styles.Error.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Warn prints a warning message.
func (r *Renderer) Warn(format string, args ...any) {
	fmt.Fprintln(r.Out, r.Styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Println writes an unstyled line.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.Out, args...)
}
