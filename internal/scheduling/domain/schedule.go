package domain

import (
	"errors"
	"sort"
	"time"

	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrBlockNotFound = errors.New("time block not found")
	ErrBlockOverlap  = errors.New("overlapping block already exists")
)

// Schedule represents a user's booked time blocks for one calendar date.
type Schedule struct {
	sharedDomain.BaseAggregateRoot
	userID uuid.UUID
	date   time.Time
	blocks []*TimeBlock
}

// NewSchedule creates a new schedule for a specific date.
func NewSchedule(userID uuid.UUID, date time.Time) *Schedule {
	// Normalize to start of day
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	return &Schedule{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		date:              date,
		blocks:            make([]*TimeBlock, 0),
	}
}

// Getters
func (s *Schedule) UserID() uuid.UUID    { return s.userID }
func (s *Schedule) Date() time.Time      { return s.date }
func (s *Schedule) Blocks() []*TimeBlock { return s.blocks }

// AddBlock books a new time block for a task.
func (s *Schedule) AddBlock(taskID uuid.UUID, startTime, endTime time.Time, focusTime bool) (*TimeBlock, error) {
	block, err := NewTimeBlock(s.userID, s.ID(), taskID, startTime, endTime, focusTime)
	if err != nil {
		return nil, err
	}

	for _, existing := range s.blocks {
		if existing.OverlapsWith(block) {
			return nil, ErrBlockOverlap
		}
	}

	s.blocks = append(s.blocks, block)
	s.sortBlocks()
	s.Touch()

	s.AddDomainEvent(NewBlockScheduled(s.ID(), block))

	return block, nil
}

// FindBlockByTask returns the block bound to a task, if any.
func (s *Schedule) FindBlockByTask(taskID uuid.UUID) (*TimeBlock, error) {
	for _, block := range s.blocks {
		if block.TaskID() == taskID {
			return block, nil
		}
	}
	return nil, ErrBlockNotFound
}

// RemoveBlockByTask removes the block bound to a task.
func (s *Schedule) RemoveBlockByTask(taskID uuid.UUID) error {
	for i, block := range s.blocks {
		if block.TaskID() == taskID {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			s.Touch()
			s.AddDomainEvent(NewBlockRemoved(s.ID(), block))
			return nil
		}
	}
	return ErrBlockNotFound
}

// FreeWithin computes the free intervals inside [dayStart, dayEnd) by
// subtracting every booked block that intersects the window. The walk keeps a
// cursor at the end of the last processed booking so that overlapping blocks
// collapse rather than producing negative gaps.
func (s *Schedule) FreeWithin(dayStart, dayEnd time.Time) []AvailabilitySlot {
	booked := make([]*TimeBlock, 0, len(s.blocks))
	for _, block := range s.blocks {
		if block.Intersects(dayStart, dayEnd) {
			booked = append(booked, block)
		}
	}
	sort.Slice(booked, func(i, j int) bool {
		return booked[i].StartTime().Before(booked[j].StartTime())
	})

	slots := make([]AvailabilitySlot, 0, len(booked)+1)
	cursor := dayStart
	for _, block := range booked {
		if block.StartTime().After(cursor) {
			slots = append(slots, AvailabilitySlot{Start: cursor, End: block.StartTime()})
		}
		if block.EndTime().After(cursor) {
			cursor = block.EndTime()
		}
	}
	if cursor.Before(dayEnd) {
		slots = append(slots, AvailabilitySlot{Start: cursor, End: dayEnd})
	}

	return slots
}

// TotalBookedTime returns the sum of all block durations.
func (s *Schedule) TotalBookedTime() time.Duration {
	total := time.Duration(0)
	for _, block := range s.blocks {
		total += block.Duration()
	}
	return total
}

func (s *Schedule) sortBlocks() {
	sort.Slice(s.blocks, func(i, j int) bool {
		return s.blocks[i].StartTime().Before(s.blocks[j].StartTime())
	})
}

// RehydrateSchedule recreates a schedule from persisted state.
func RehydrateSchedule(
	id uuid.UUID,
	userID uuid.UUID,
	date time.Time,
	blocks []*TimeBlock,
	createdAt, updatedAt time.Time,
) *Schedule {
	s := &Schedule{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		date:              date,
		blocks:            blocks,
	}
	s.sortBlocks()
	return s
}
