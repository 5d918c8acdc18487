package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
)

func TestFindAvailableSlotsHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()
	// A Wednesday.
	date := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)

	t.Run("empty day yields the whole working window", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		hours := new(mockWorkingHoursProvider)
		handler := NewFindAvailableSlotsHandler(scheduleRepo, hours)

		hours.On("GetWorkingHours", ctx, userID).Return(domain.DefaultWorkingHours(), nil)
		scheduleRepo.On("FindByUserAndDate", ctx, userID, date).Return(nil, nil)

		slots, err := handler.Handle(ctx, FindAvailableSlotsQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, date.Add(9*time.Hour), slots[0].Start)
		assert.Equal(t, date.Add(17*time.Hour), slots[0].End)
		assert.Equal(t, 480, slots[0].DurationMin)
	})

	t.Run("booked blocks split the window", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		hours := new(mockWorkingHoursProvider)
		handler := NewFindAvailableSlotsHandler(scheduleRepo, hours)

		schedule := domain.NewSchedule(userID, date)
		_, err := schedule.AddBlock(uuid.New(), date.Add(10*time.Hour), date.Add(12*time.Hour), false)
		require.NoError(t, err)

		hours.On("GetWorkingHours", ctx, userID).Return(domain.DefaultWorkingHours(), nil)
		scheduleRepo.On("FindByUserAndDate", ctx, userID, date).Return(schedule, nil)

		slots, err := handler.Handle(ctx, FindAvailableSlotsQuery{UserID: userID, Date: date})

		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 60, slots[0].DurationMin)
		assert.Equal(t, date.Add(12*time.Hour), slots[1].Start)
		assert.Equal(t, 300, slots[1].DurationMin)
	})

	t.Run("non-working day yields no slots", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		hours := new(mockWorkingHoursProvider)
		handler := NewFindAvailableSlotsHandler(scheduleRepo, hours)

		saturday := time.Date(2026, time.January, 17, 0, 0, 0, 0, time.UTC)
		hours.On("GetWorkingHours", ctx, userID).Return(domain.DefaultWorkingHours(), nil)
		scheduleRepo.On("FindByUserAndDate", ctx, userID, saturday).Return(nil, nil)

		slots, err := handler.Handle(ctx, FindAvailableSlotsQuery{UserID: userID, Date: saturday})

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("wraps working-hours failures", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		hours := new(mockWorkingHoursProvider)
		handler := NewFindAvailableSlotsHandler(scheduleRepo, hours)

		hours.On("GetWorkingHours", ctx, userID).
			Return(domain.WorkingHours{}, errors.New("settings unavailable"))

		_, err := handler.Handle(ctx, FindAvailableSlotsQuery{UserID: userID, Date: date})

		assert.ErrorIs(t, err, domain.ErrRetrievalFailed)
	})

	t.Run("wraps schedule failures", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		hours := new(mockWorkingHoursProvider)
		handler := NewFindAvailableSlotsHandler(scheduleRepo, hours)

		hours.On("GetWorkingHours", ctx, userID).Return(domain.DefaultWorkingHours(), nil)
		scheduleRepo.On("FindByUserAndDate", ctx, userID, date).Return(nil, errors.New("connection lost"))

		_, err := handler.Handle(ctx, FindAvailableSlotsQuery{UserID: userID, Date: date})

		assert.ErrorIs(t, err, domain.ErrRetrievalFailed)
	})
}
