// Package taskutil holds small helpers shared by the command-line entry points.
package taskutil

import (
	"strconv"
	"strings"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/types"
)

// NormalizePriority maps a number or a common name for a priority to a
// Priority. "1".."3" behave exactly like models.ParsePriority.
func NormalizePriority(input string) (models.Priority, error) {
	s := strings.ToLower(strings.TrimSpace(input))

	switch s {
	case "high", "hi", "h", "urgent", "important", "p1":
		return models.PriorityHigh, nil
	case "medium", "med", "m", "normal", "p2":
		return models.PriorityMedium, nil
	case "low", "lo", "l", "minor", "p3":
		return models.PriorityLow, nil
	}

	if _, err := strconv.Atoi(s); err == nil || s == "" {
		return models.ParsePriority(s)
	}
	return 0, types.NewValidationError("priority", "unknown priority '"+strings.TrimSpace(input)+"' (use 1-3 or high, medium, low)")
}
