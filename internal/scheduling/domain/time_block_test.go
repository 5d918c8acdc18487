package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeBlock(t *testing.T) {
	userID := uuid.New()
	scheduleID := uuid.New()
	taskID := uuid.New()

	block, err := NewTimeBlock(userID, scheduleID, taskID, at(9, 0), at(10, 30), true)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, block.ID())
	assert.Equal(t, userID, block.UserID())
	assert.Equal(t, scheduleID, block.ScheduleID())
	assert.Equal(t, taskID, block.TaskID())
	assert.Equal(t, 90*time.Minute, block.Duration())
	assert.True(t, block.IsFocusTime())
}

func TestNewTimeBlock_InvalidRange(t *testing.T) {
	_, err := NewTimeBlock(uuid.New(), uuid.New(), uuid.New(), at(10, 0), at(10, 0), false)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = NewTimeBlock(uuid.New(), uuid.New(), uuid.New(), at(10, 0), at(9, 0), false)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeBlock_OverlapsWith(t *testing.T) {
	base, err := NewTimeBlock(uuid.New(), uuid.New(), uuid.New(), at(9, 0), at(10, 0), false)
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"partial overlap", at(9, 30), at(10, 30), true},
		{"contained", at(9, 15), at(9, 45), true},
		{"adjacent after", at(10, 0), at(11, 0), false},
		{"adjacent before", at(8, 0), at(9, 0), false},
		{"disjoint", at(12, 0), at(13, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other, err := NewTimeBlock(uuid.New(), uuid.New(), uuid.New(), tc.start, tc.end, false)
			require.NoError(t, err)
			assert.Equal(t, tc.want, base.OverlapsWith(other))
			assert.Equal(t, tc.want, other.OverlapsWith(base))
		})
	}
}

func TestTimeBlock_Intersects(t *testing.T) {
	block, err := NewTimeBlock(uuid.New(), uuid.New(), uuid.New(), at(8, 0), at(9, 30), false)
	require.NoError(t, err)

	assert.True(t, block.Intersects(at(9, 0), at(17, 0)))
	assert.False(t, block.Intersects(at(9, 30), at(17, 0)))
	assert.False(t, block.Intersects(at(6, 0), at(8, 0)))
}
