package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
	"github.com/google/uuid"
)

// AvailabilitySlotDTO is a data transfer object for free time slots.
type AvailabilitySlotDTO struct {
	Start       time.Time
	End         time.Time
	DurationMin int
}

// FindAvailableSlotsQuery contains the parameters for resolving availability.
type FindAvailableSlotsQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// FindAvailableSlotsHandler resolves the free intervals for a user's date:
// the configured working window for that weekday minus any booked blocks.
type FindAvailableSlotsHandler struct {
	scheduleRepo domain.ScheduleRepository
	workingHours domain.WorkingHoursProvider
}

// NewFindAvailableSlotsHandler creates a new FindAvailableSlotsHandler.
func NewFindAvailableSlotsHandler(scheduleRepo domain.ScheduleRepository, workingHours domain.WorkingHoursProvider) *FindAvailableSlotsHandler {
	return &FindAvailableSlotsHandler{
		scheduleRepo: scheduleRepo,
		workingHours: workingHours,
	}
}

// Handle executes the FindAvailableSlotsQuery. Storage failures are surfaced
// as retrieval errors; the handler never returns partial availability.
func (h *FindAvailableSlotsHandler) Handle(ctx context.Context, query FindAvailableSlotsQuery) ([]AvailabilitySlotDTO, error) {
	hours, err := h.workingHours.GetWorkingHours(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: working hours: %w", domain.ErrRetrievalFailed, err)
	}

	schedule, err := h.scheduleRepo.FindByUserAndDate(ctx, query.UserID, query.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule: %w", domain.ErrRetrievalFailed, err)
	}

	slots := domain.ResolveAvailability(hours, query.Date, schedule)

	dtos := make([]AvailabilitySlotDTO, len(slots))
	for i, slot := range slots {
		dtos[i] = AvailabilitySlotDTO{
			Start:       slot.Start,
			End:         slot.End,
			DurationMin: int(slot.Duration().Minutes()),
		}
	}

	return dtos, nil
}
