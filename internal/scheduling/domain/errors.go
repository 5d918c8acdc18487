package domain

import "errors"

// Scheduling failure taxonomy. Each condition is a distinct sentinel so
// callers can present specific, actionable messages.
var (
	// ErrNoAvailability means the resolver found zero free time on the
	// requested date (non-working day or fully booked).
	ErrNoAvailability = errors.New("no availability on the requested date")

	// ErrNoSuitableSlot means free time exists but no contiguous interval is
	// long enough for the task's estimated duration.
	ErrNoSuitableSlot = errors.New("no free slot is long enough for the task")

	// ErrRetrievalFailed wraps storage read failures.
	ErrRetrievalFailed = errors.New("failed to retrieve scheduling data")

	// ErrPersistenceFailed wraps the final time-block write failure. The
	// caller must not assume a block exists when it sees this.
	ErrPersistenceFailed = errors.New("failed to persist time block")
)
