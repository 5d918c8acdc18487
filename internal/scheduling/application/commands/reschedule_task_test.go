package commands

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
)

func TestRescheduleTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	monday := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	t.Run("moves the block to the new date", func(t *testing.T) {
		env := newScheduleTestEnv(t, monday)
		env.uow.On("Commit", env.txCtx).Return(nil)
		handler := NewRescheduleTaskHandler(env.handler, nil)

		testTask := newTestTask(t, userID, value_objects.PriorityMedium, 60)
		require.NoError(t, testTask.MarkScheduled())

		oldSchedule := domain.NewSchedule(userID, monday)
		_, err := oldSchedule.AddBlock(testTask.ID(), monday.Add(9*time.Hour), monday.Add(10*time.Hour), false)
		require.NoError(t, err)
		oldSchedule.ClearDomainEvents()

		env.taskRepo.On("FindByID", env.txCtx, testTask.ID()).Return(testTask, nil)
		env.taskRepo.On("Save", env.txCtx, testTask).Return(nil)
		env.scheduleRepo.On("FindByUserAndTask", env.txCtx, userID, testTask.ID()).Return(oldSchedule, nil)
		env.scheduleRepo.On("FindByUserAndDate", env.txCtx, userID, tuesday).Return(nil, nil)
		env.scheduleRepo.On("Save", env.txCtx, mock.AnythingOfType("*domain.Schedule")).Return(nil)
		env.hours.On("GetWorkingHours", env.txCtx, userID).Return(domain.DefaultWorkingHours(), nil)
		env.outboxRepo.On("SaveBatch", env.txCtx, mock.Anything).Return(nil)

		result, err := handler.Handle(env.ctx, RescheduleTaskCommand{
			UserID:  userID,
			TaskID:  testTask.ID(),
			NewDate: tuesday,
		})

		require.NoError(t, err)
		assert.Equal(t, tuesday.Add(9*time.Hour), result.StartTime)
		assert.Empty(t, oldSchedule.Blocks())
		env.scheduleRepo.AssertExpectations(t)
	})

	t.Run("rescheduling onto the same day frees the old slot first", func(t *testing.T) {
		env := newScheduleTestEnv(t, monday)
		env.uow.On("Commit", env.txCtx).Return(nil)
		handler := NewRescheduleTaskHandler(env.handler, nil)

		testTask := newTestTask(t, userID, value_objects.PriorityMedium, 60)
		require.NoError(t, testTask.MarkScheduled())

		schedule := domain.NewSchedule(userID, monday)
		_, err := schedule.AddBlock(testTask.ID(), monday.Add(9*time.Hour), monday.Add(10*time.Hour), false)
		require.NoError(t, err)
		schedule.ClearDomainEvents()

		env.taskRepo.On("FindByID", env.txCtx, testTask.ID()).Return(testTask, nil)
		env.taskRepo.On("Save", env.txCtx, testTask).Return(nil)
		env.scheduleRepo.On("FindByUserAndTask", env.txCtx, userID, testTask.ID()).Return(schedule, nil)
		env.scheduleRepo.On("FindByUserAndDate", env.txCtx, userID, monday).Return(schedule, nil)
		env.scheduleRepo.On("Save", env.txCtx, schedule).Return(nil)
		env.hours.On("GetWorkingHours", env.txCtx, userID).Return(domain.DefaultWorkingHours(), nil)
		env.outboxRepo.On("SaveBatch", env.txCtx, mock.Anything).Return(nil)

		result, err := handler.Handle(env.ctx, RescheduleTaskCommand{
			UserID:  userID,
			TaskID:  testTask.ID(),
			NewDate: monday,
		})

		require.NoError(t, err)
		// The freed 09:00 slot is reused; exactly one block remains.
		assert.Equal(t, monday.Add(9*time.Hour), result.StartTime)
		require.Len(t, schedule.Blocks(), 1)
		assert.Equal(t, testTask.ID(), schedule.Blocks()[0].TaskID())
	})

	t.Run("schedules normally when the task has no block yet", func(t *testing.T) {
		env := newScheduleTestEnv(t, monday)
		env.uow.On("Commit", env.txCtx).Return(nil)
		handler := NewRescheduleTaskHandler(env.handler, nil)

		testTask := newTestTask(t, userID, value_objects.PriorityMedium, 45)

		env.taskRepo.On("FindByID", env.txCtx, testTask.ID()).Return(testTask, nil)
		env.taskRepo.On("Save", env.txCtx, testTask).Return(nil)
		env.scheduleRepo.On("FindByUserAndTask", env.txCtx, userID, testTask.ID()).Return(nil, nil)
		env.scheduleRepo.On("FindByUserAndDate", env.txCtx, userID, tuesday).Return(nil, nil)
		env.scheduleRepo.On("Save", env.txCtx, mock.AnythingOfType("*domain.Schedule")).Return(nil)
		env.hours.On("GetWorkingHours", env.txCtx, userID).Return(domain.DefaultWorkingHours(), nil)
		env.outboxRepo.On("SaveBatch", env.txCtx, mock.Anything).Return(nil)

		result, err := handler.Handle(env.ctx, RescheduleTaskCommand{
			UserID:  userID,
			TaskID:  testTask.ID(),
			NewDate: tuesday,
		})

		require.NoError(t, err)
		assert.Equal(t, tuesday.Add(9*time.Hour), result.StartTime)
	})

	t.Run("propagates ErrTaskNotFound", func(t *testing.T) {
		env := newScheduleTestEnv(t, monday)
		env.uow.On("Rollback", env.txCtx).Return(nil)
		handler := NewRescheduleTaskHandler(env.handler, nil)

		missingID := uuid.New()
		env.taskRepo.On("FindByID", env.txCtx, missingID).Return(nil, task.ErrTaskNotFound)

		_, err := handler.Handle(env.ctx, RescheduleTaskCommand{
			UserID:  userID,
			TaskID:  missingID,
			NewDate: tuesday,
		})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}
