package domain

import (
	"context"

	"github.com/google/uuid"

	schedulingDomain "github.com/ascendhq/ascend/internal/scheduling/domain"
)

// WorkingHoursRepository persists each user's working-hours preference.
type WorkingHoursRepository interface {
	// Get returns the stored preference, or (nil, nil) when the user has
	// never configured one.
	Get(ctx context.Context, userID uuid.UUID) (*schedulingDomain.WorkingHours, error)
	Save(ctx context.Context, userID uuid.UUID, hours schedulingDomain.WorkingHours) error
}
