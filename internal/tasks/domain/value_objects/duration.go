package value_objects

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDuration = errors.New("estimated duration must be positive")
	ErrDurationTooLong = errors.New("duration exceeds maximum allowed")
)

// MaxDuration is the maximum allowed task duration (12 hours).
const MaxDuration = 12 * time.Hour

// Duration represents an estimated task duration in whole minutes.
type Duration struct {
	minutes int
}

// NewDuration creates a Duration from a minute count.
func NewDuration(minutes int) (Duration, error) {
	if minutes <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	if time.Duration(minutes)*time.Minute > MaxDuration {
		return Duration{}, ErrDurationTooLong
	}
	return Duration{minutes: minutes}, nil
}

// MustNewDuration creates a Duration or panics on error.
func MustNewDuration(minutes int) Duration {
	d, err := NewDuration(minutes)
	if err != nil {
		panic(err)
	}
	return d
}

// Minutes returns the duration in minutes.
func (d Duration) Minutes() int {
	return d.minutes
}

// Value returns the underlying time.Duration.
func (d Duration) Value() time.Duration {
	return time.Duration(d.minutes) * time.Minute
}

// String returns a human-readable representation.
func (d Duration) String() string {
	hours := d.minutes / 60
	minutes := d.minutes % 60

	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
