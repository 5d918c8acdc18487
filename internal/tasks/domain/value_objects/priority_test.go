package value_objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"low", PriorityLow},
		{"medium", PriorityMedium},
		{"high", PriorityHigh},
		{"HIGH", PriorityHigh},
		{"Medium", PriorityMedium},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			p, err := ParsePriority(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestParsePriority_Invalid(t *testing.T) {
	_, err := ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "medium", PriorityMedium.String())
	assert.Equal(t, "high", PriorityHigh.String())
	assert.Equal(t, "unknown", Priority(42).String())
}

func TestPriority_IsValid(t *testing.T) {
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority(42).IsValid())
}
