package taskutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskdeck/models"
	"github.com/josephgoksu/taskdeck/types"
)

func TestNormalizePriority(t *testing.T) {
	tests := map[string]models.Priority{
		"1":      models.PriorityHigh,
		" high ": models.PriorityHigh,
		"H":      models.PriorityHigh,
		"p1":     models.PriorityHigh,
		"2":      models.PriorityMedium,
		"Medium": models.PriorityMedium,
		"normal": models.PriorityMedium,
		"3":      models.PriorityLow,
		"low":    models.PriorityLow,
		"minor":  models.PriorityLow,
	}
	for input, want := range tests {
		got, err := NormalizePriority(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestNormalizePriority_Invalid(t *testing.T) {
	for _, input := range []string{"", "0", "4", "someday", "p4"} {
		_, err := NormalizePriority(input)
		assert.ErrorIs(t, err, types.ErrValidation, input)
	}
}
