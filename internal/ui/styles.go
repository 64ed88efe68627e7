package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/taskdeck/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Priority colors follow the classic bright red / yellow / blue scheme.
	ColorPriorityHigh   = lipgloss.Color("9")
	ColorPriorityMedium = lipgloss.Color("11")
	ColorPriorityLow    = lipgloss.Color("12")
)

// Styles is the set of lipgloss styles bound to one renderer.
type Styles struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Text    lipgloss.Style

	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style
}

// NewStyles builds the palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Foreground(ColorPrimary).Bold(true),
		Subtle:  r.NewStyle().Foreground(ColorSecondary),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Text:    r.NewStyle().Foreground(ColorText),

		High:   r.NewStyle().Foreground(ColorPriorityHigh),
		Medium: r.NewStyle().Foreground(ColorPriorityMedium),
		Low:    r.NewStyle().Foreground(ColorPriorityLow),
	}
}

// Priority returns the style for p. Unknown priorities use the text style.
func (s Styles) Priority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return s.High
	case models.PriorityMedium:
		return s.Medium
	case models.PriorityLow:
		return s.Low
	default:
		return s.Text
	}
}

// Task returns the style for a task row: its priority color, struck through
// once completed.
func (s Styles) Task(t models.Task) lipgloss.Style {
	style := s.Priority(t.Priority)
	if t.Completed {
		style = style.Strikethrough(true)
	}
	return style
}
