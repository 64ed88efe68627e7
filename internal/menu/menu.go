// Package menu runs the interactive numbered menu over a task list.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/josephgoksu/taskdeck/internal/logger"
	"github.com/josephgoksu/taskdeck/internal/task"
	"github.com/josephgoksu/taskdeck/internal/ui"
	"github.com/josephgoksu/taskdeck/types"
)

// Menu reads choices from an input stream and applies them to List.
type Menu struct {
	list   *task.List
	ui     *ui.Renderer
	prompt *prompter
	log    *log.Logger
}

// Item is one numbered menu entry.
type Item struct {
	Key    string
	Label  string
	Action func(ctx context.Context) error
}

// errExit is returned by the exit item to stop the loop.
var errExit = errors.New("exit")

// New creates a menu reading lines from in and rendering through r.
func New(in io.Reader, r *ui.Renderer, list *task.List, l *log.Logger) *Menu {
	if l == nil {
		l = logger.Discard()
	}
	return &Menu{
		list:   list,
		ui:     r,
		prompt: newPrompter(in, r.Out),
		log:    l,
	}
}

// Items returns the menu entries in display order.
func (m *Menu) Items() []Item {
	return []Item{
		{Key: "1", Label: "View Tasks (Sorted by Priority)", Action: m.view},
		{Key: "2", Label: "Add New Task", Action: m.add},
		{Key: "3", Label: "Mark Task as Complete", Action: m.complete},
		{Key: "4", Label: "Change Task Priority", Action: m.reprioritize},
		{Key: "5", Label: "Delete Task", Action: m.delete},
		{Key: "0", Label: "Exit & Save", Action: func(context.Context) error { return errExit }},
	}
}

// Run shows the list and the menu until the user exits, input ends, or ctx
// is cancelled. Every path out of the loop saves the list; the returned
// error is only ever that final save failing.
func (m *Menu) Run(ctx context.Context) error {
	m.ui.Success("Welcome to taskdeck!")
	items := m.Items()

	for {
		m.ui.Tasks(task.SortForDisplay(m.list.Tasks()))
		m.showMenu(items)

		choice, err := m.prompt.line(ctx, "Enter your choice (0-5): ")
		if err != nil {
			return m.exit(err)
		}

		item, ok := find(items, choice)
		if !ok {
			m.ui.Error("Invalid choice. Please enter a number between 0 and 5.")
			continue
		}

		m.log.Debug("menu selection", "choice", item.Key, "label", item.Label)
		if err := item.Action(ctx); err != nil {
			if errors.Is(err, errExit) || isInputClosed(err) {
				return m.exit(err)
			}
			m.report(err)
		}
	}
}

func (m *Menu) showMenu(items []Item) {
	m.ui.Println()
	m.ui.Println("--- Task Manager Menu ---")
	for _, it := range items {
		m.ui.Println(fmt.Sprintf("%s: %s", it.Key, it.Label))
	}
	m.ui.Println("-------------------------")
}

func (m *Menu) exit(cause error) error {
	m.ui.Println()
	switch {
	case errors.Is(cause, context.Canceled), errors.Is(cause, context.DeadlineExceeded):
		m.ui.Warn("Interrupted. Saving tasks and exiting.")
	case errors.Is(cause, io.EOF):
		m.ui.Warn("End of input. Saving tasks and exiting.")
	case errors.Is(cause, errExit):
		m.ui.Success("Saving tasks and exiting. Goodbye!")
	default:
		m.log.Error("reading input failed", "err", cause)
	}

	if err := m.list.Save(); err != nil {
		m.log.Error("final save failed", "err", err)
		return fmt.Errorf("failed to save tasks on exit: %w", err)
	}
	return nil
}

// report prints an operation failure. Validation and not-found errors are
// expected; a write failure leaves the change in memory only.
func (m *Menu) report(err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		m.ui.Error("%s", capitalize(verr.Reason))
	case errors.Is(err, types.ErrNotFound):
		m.ui.Error("%s", capitalize(err.Error()))
	case errors.Is(err, types.ErrStorageWrite):
		m.log.Error("save failed", "err", err)
		m.ui.Error("could not save tasks: %v", err)
		m.ui.Warn("The change is kept for this session and will be saved again on the next change or on exit.")
	default:
		m.ui.Error("%v", err)
	}
}

func find(items []Item, key string) (Item, bool) {
	for _, it := range items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

func isInputClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
