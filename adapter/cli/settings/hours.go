package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/adapter/cli"
)

var (
	startFlag string
	endFlag   string
	daysFlag  []string
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "View or set working hours",
	Long: `View or set the daily window the scheduler may book blocks in.

Without flags the current configuration is shown.

Examples:
  ascend settings hours
  ascend settings hours --start 08:30 --end 16:30
  ascend settings hours --start 10:00 --end 18:00 --days mon,tue,wed,thu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SettingsService == nil {
			return fmt.Errorf("application not initialized")
		}

		if startFlag == "" && endFlag == "" && len(daysFlag) == 0 {
			hours, err := app.SettingsService.GetWorkingHours(cmd.Context(), app.CurrentUserID)
			if err != nil {
				return fmt.Errorf("failed to load working hours: %w", err)
			}
			fmt.Printf("Working hours: %s\n", hours)
			names := make([]string, 0, len(hours.Days()))
			for _, day := range hours.Days() {
				names = append(names, day.String()[:3])
			}
			fmt.Printf("Days: %s\n", strings.Join(names, ", "))
			return nil
		}

		if startFlag == "" || endFlag == "" {
			return fmt.Errorf("both --start and --end are required when changing hours")
		}

		days, err := parseDays(daysFlag)
		if err != nil {
			return err
		}

		hours, err := app.SettingsService.UpdateWorkingHours(cmd.Context(), app.CurrentUserID, startFlag, endFlag, days)
		if err != nil {
			return fmt.Errorf("failed to update working hours: %w", err)
		}

		fmt.Printf("Working hours set to %s.\n", hours)
		return nil
	},
}

func parseDays(flags []string) ([]time.Weekday, error) {
	if len(flags) == 0 {
		return []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		}, nil
	}

	var days []time.Weekday
	for _, raw := range flags {
		name := strings.ToLower(strings.TrimSpace(raw))
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", raw)
		}
		days = append(days, day)
	}
	return days, nil
}

func init() {
	hoursCmd.Flags().StringVar(&startFlag, "start", "", "start of day (HH:MM)")
	hoursCmd.Flags().StringVar(&endFlag, "end", "", "end of day (HH:MM)")
	hoursCmd.Flags().StringSliceVar(&daysFlag, "days", nil, "working days (mon,tue,...)")
}
