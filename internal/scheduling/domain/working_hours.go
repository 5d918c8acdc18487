package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWorkingWindow = errors.New("end of working day must be after start")
	ErrInvalidWeekday       = errors.New("weekday must be in range 0-6")
)

// minutesPerDay bounds a time-of-day expressed as minutes since midnight.
const minutesPerDay = 24 * 60

// WorkingHours is a user's per-weekday scheduling window. Start and end are
// minutes since midnight; Days holds the weekdays the window applies to.
type WorkingHours struct {
	startMinute int
	endMinute   int
	days        map[time.Weekday]bool
}

// NewWorkingHours creates a validated working-hours configuration.
func NewWorkingHours(startMinute, endMinute int, days []time.Weekday) (WorkingHours, error) {
	if startMinute < 0 || endMinute > minutesPerDay || endMinute <= startMinute {
		return WorkingHours{}, ErrInvalidWorkingWindow
	}

	daySet := make(map[time.Weekday]bool, len(days))
	for _, day := range days {
		if day < time.Sunday || day > time.Saturday {
			return WorkingHours{}, ErrInvalidWeekday
		}
		daySet[day] = true
	}

	return WorkingHours{
		startMinute: startMinute,
		endMinute:   endMinute,
		days:        daySet,
	}, nil
}

// DefaultWorkingHours returns 09:00-17:00, Monday through Friday.
func DefaultWorkingHours() WorkingHours {
	wh, _ := NewWorkingHours(9*60, 17*60, []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	})
	return wh
}

// StartMinute returns the start of day in minutes since midnight.
func (w WorkingHours) StartMinute() int { return w.startMinute }

// EndMinute returns the end of day in minutes since midnight.
func (w WorkingHours) EndMinute() int { return w.endMinute }

// Days returns the applicable weekdays in ascending order.
func (w WorkingHours) Days() []time.Weekday {
	days := make([]time.Weekday, 0, len(w.days))
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w.days[day] {
			days = append(days, day)
		}
	}
	return days
}

// IncludesDay reports whether the given weekday is a working day.
func (w WorkingHours) IncludesDay(day time.Weekday) bool {
	return w.days[day]
}

// WindowOn projects the working window onto a calendar date. The time-of-day
// component of date is ignored.
func (w WorkingHours) WindowOn(date time.Time) (start, end time.Time) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start = midnight.Add(time.Duration(w.startMinute) * time.Minute)
	end = midnight.Add(time.Duration(w.endMinute) * time.Minute)
	return start, end
}

// String formats the window as HH:MM-HH:MM.
func (w WorkingHours) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.startMinute/60, w.startMinute%60,
		w.endMinute/60, w.endMinute%60,
	)
}
