package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
)

// mockScheduleRepo is a mock implementation of domain.ScheduleRepository.
type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Save(ctx context.Context, s *domain.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockScheduleRepo) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Schedule, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) FindByUserAndTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Schedule, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockWorkingHoursProvider is a mock implementation of domain.WorkingHoursProvider.
type mockWorkingHoursProvider struct {
	mock.Mock
}

func (m *mockWorkingHoursProvider) GetWorkingHours(ctx context.Context, userID uuid.UUID) (domain.WorkingHours, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.WorkingHours), args.Error(1)
}
