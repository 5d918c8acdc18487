package schedule

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage your daily schedule",
	Long:  `Plan tasks into time blocks, move them, and inspect free slots.`,
}

func init() {
	Cmd.AddCommand(planCmd)
	Cmd.AddCommand(moveCmd)
	Cmd.AddCommand(availableCmd)
	Cmd.AddCommand(showCmd)
}

// parseDate parses a YYYY-MM-DD flag, defaulting to today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	return parsed, nil
}
