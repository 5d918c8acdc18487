package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
)

// GetScheduleQuery asks for the schedule on a calendar date.
type GetScheduleQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// TimeBlockDTO is the read model for a scheduled block.
type TimeBlockDTO struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	FocusTime bool      `json:"focus_time"`
}

// ScheduleDTO is the read model for a day's schedule.
type ScheduleDTO struct {
	ID            uuid.UUID      `json:"id"`
	Date          time.Time      `json:"date"`
	Blocks        []TimeBlockDTO `json:"blocks"`
	BookedMinutes int            `json:"booked_minutes"`
}

// GetScheduleHandler loads a day's schedule. Returns (nil, nil) when
// nothing is scheduled yet.
type GetScheduleHandler struct {
	scheduleRepo domain.ScheduleRepository
}

func NewGetScheduleHandler(scheduleRepo domain.ScheduleRepository) *GetScheduleHandler {
	return &GetScheduleHandler{scheduleRepo: scheduleRepo}
}

func (h *GetScheduleHandler) Handle(ctx context.Context, query GetScheduleQuery) (*ScheduleDTO, error) {
	schedule, err := h.scheduleRepo.FindByUserAndDate(ctx, query.UserID, query.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: loading schedule: %w", domain.ErrRetrievalFailed, err)
	}
	if schedule == nil {
		return nil, nil
	}

	dto := &ScheduleDTO{
		ID:            schedule.ID(),
		Date:          schedule.Date(),
		Blocks:        make([]TimeBlockDTO, 0, len(schedule.Blocks())),
		BookedMinutes: int(schedule.TotalBookedTime().Minutes()),
	}
	for _, block := range schedule.Blocks() {
		dto.Blocks = append(dto.Blocks, TimeBlockDTO{
			ID:        block.ID(),
			TaskID:    block.TaskID(),
			StartTime: block.StartTime(),
			EndTime:   block.EndTime(),
			FocusTime: block.IsFocusTime(),
		})
	}

	return dto, nil
}
