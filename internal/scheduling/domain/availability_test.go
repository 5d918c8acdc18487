package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAvailability_NonWorkingDay(t *testing.T) {
	// 2026-03-07 is a Saturday.
	saturday := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	slots := ResolveAvailability(DefaultWorkingHours(), saturday, nil)

	assert.Nil(t, slots)
}

func TestResolveAvailability_NilSchedule(t *testing.T) {
	slots := ResolveAvailability(DefaultWorkingHours(), testDate(), nil)

	require.Len(t, slots, 1)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(17, 0), slots[0].End)
}

func TestResolveAvailability_FragmentedDay(t *testing.T) {
	schedule := NewSchedule(uuid.New(), testDate())
	_, err := schedule.AddBlock(uuid.New(), at(10, 0), at(11, 0), false)
	require.NoError(t, err)
	_, err = schedule.AddBlock(uuid.New(), at(14, 0), at(15, 30), false)
	require.NoError(t, err)

	slots := ResolveAvailability(DefaultWorkingHours(), testDate(), schedule)

	require.Len(t, slots, 3)
	assert.Equal(t, AvailabilitySlot{Start: at(9, 0), End: at(10, 0)}, slots[0])
	assert.Equal(t, AvailabilitySlot{Start: at(11, 0), End: at(14, 0)}, slots[1])
	assert.Equal(t, AvailabilitySlot{Start: at(15, 30), End: at(17, 0)}, slots[2])
}

func TestAvailabilitySlot_Fits(t *testing.T) {
	slot := AvailabilitySlot{Start: at(9, 0), End: at(10, 0)}

	assert.Equal(t, time.Hour, slot.Duration())
	assert.True(t, slot.Fits(30*time.Minute))
	assert.True(t, slot.Fits(time.Hour))
	assert.False(t, slot.Fits(61*time.Minute))
}
