package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/taskdeck/types"
)

// Priority is the ordinal urgency of a task. Lower values are more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Priorities lists the valid priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Valid reports whether p is one of High, Medium or Low.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority parses "1", "2" or "3" into a Priority.
func ParsePriority(s string) (Priority, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, types.NewValidationError("priority", "please enter a number (1, 2, or 3)")
	}
	p := Priority(n)
	if !p.Valid() {
		return 0, types.NewValidationError("priority", "priority must be 1, 2, or 3")
	}
	return p, nil
}

// Task represents a single to-do item.
type Task struct {
	ID          int      `json:"id" yaml:"id" toml:"id" validate:"required,min=1"`
	Description string   `json:"description" yaml:"description" toml:"description" validate:"required"`
	Priority    Priority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=1 2 3"`
	Completed   bool     `json:"completed" yaml:"completed" toml:"completed"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
// Failures are reported as a *types.ValidationError naming the first offending field.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return types.NewValidationError("", err.Error())
	}
	e := validationErrors[0]
	field := strings.ToLower(e.Field())
	switch field {
	case "description":
		return types.NewValidationError(field, "task description cannot be empty")
	case "priority":
		return types.NewValidationError(field, "priority must be 1, 2, or 3")
	default:
		return types.NewValidationError(field, fmt.Sprintf("rule '%s' failed (value: '%v')", e.Tag(), e.Value()))
	}
}

// NewTask builds a pending task with a trimmed description and validates it.
func NewTask(id int, description string, priority Priority) (Task, error) {
	t := Task{
		ID:          id,
		Description: strings.TrimSpace(description),
		Priority:    priority,
	}
	if err := ValidateStruct(t); err != nil {
		return Task{}, err
	}
	return t, nil
}
