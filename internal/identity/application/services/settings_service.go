package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/identity/domain"
	schedulingDomain "github.com/ascendhq/ascend/internal/scheduling/domain"
)

// SettingsService manages user preferences. It backs the scheduling
// context's WorkingHoursProvider: users without a stored preference get
// the default window.
type SettingsService struct {
	repo   domain.WorkingHoursRepository
	logger *slog.Logger
}

func NewSettingsService(repo domain.WorkingHoursRepository, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		repo:   repo,
		logger: logger,
	}
}

// GetWorkingHours returns the user's working hours, falling back to the
// default window when none are configured.
func (s *SettingsService) GetWorkingHours(ctx context.Context, userID uuid.UUID) (schedulingDomain.WorkingHours, error) {
	hours, err := s.repo.Get(ctx, userID)
	if err != nil {
		return schedulingDomain.WorkingHours{}, fmt.Errorf("loading working hours: %w", err)
	}
	if hours == nil {
		return schedulingDomain.DefaultWorkingHours(), nil
	}
	return *hours, nil
}

// UpdateWorkingHours validates and stores a new working window. Start and
// end are "HH:MM" strings; days lists the applicable weekdays.
func (s *SettingsService) UpdateWorkingHours(
	ctx context.Context,
	userID uuid.UUID,
	start, end string,
	days []time.Weekday,
) (schedulingDomain.WorkingHours, error) {
	startMinute, err := parseClock(start)
	if err != nil {
		return schedulingDomain.WorkingHours{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	endMinute, err := parseClock(end)
	if err != nil {
		return schedulingDomain.WorkingHours{}, fmt.Errorf("invalid end time %q: %w", end, err)
	}

	hours, err := schedulingDomain.NewWorkingHours(startMinute, endMinute, days)
	if err != nil {
		return schedulingDomain.WorkingHours{}, err
	}

	if err := s.repo.Save(ctx, userID, hours); err != nil {
		return schedulingDomain.WorkingHours{}, fmt.Errorf("saving working hours: %w", err)
	}

	s.logger.Info("working hours updated",
		slog.String("user_id", userID.String()),
		slog.String("window", hours.String()),
	)

	return hours, nil
}

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM")
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("expected HH:MM")
	}

	return hour*60 + minute, nil
}
