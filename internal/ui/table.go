package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/taskdeck/models"
)

// Table renders rows in a compact fixed-width layout.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)

	// RowStyle, when set, styles whole rows by index.
	RowStyle func(row int) lipgloss.Style
}

// ColumnWidths calculates column widths in terminal cells.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	if t.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.MaxWidth)
		}
	}
	return widths
}

// Render outputs the table using styles for the header and separator.
func (t *Table) Render(styles Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerCells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headerCells[i] = styles.Title.Render(padRight(h, widths[i]))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(" " + styles.Subtle.Render(strings.Join(sep, "──")) + "\n")

	for r, row := range t.Rows {
		cells := make([]string, len(t.Headers))
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = padRight(truncate(val, widths[i]), widths[i])
		}
		line := strings.Join(cells, "  ")
		if t.RowStyle != nil {
			line = t.RowStyle(r).Render(line)
		}
		sb.WriteString(" " + line + "\n")
	}

	return sb.String()
}

// TaskTable renders tasks, already in display order, as a table.
func (r *Renderer) TaskTable(tasks []models.Task, maxWidth int) string {
	t := &Table{
		Headers:  []string{"ID", "Done", "Priority", "Description"},
		MaxWidth: maxWidth,
		RowStyle: func(i int) lipgloss.Style { return r.Styles.Task(tasks[i]) },
	}
	for _, task := range tasks {
		done := ""
		if task.Completed {
			done = "x"
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(task.ID),
			done,
			task.Priority.String(),
			task.Description,
		})
	}
	return t.Render(r.Styles)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
