package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/adapter/cli"
	"github.com/ascendhq/ascend/internal/scheduling/application/queries"
)

var showDate string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the schedule for a day",
	Long: `Show the time blocks scheduled for a day.

Examples:
  ascend schedule show
  ascend schedule show --date 2026-09-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetScheduleHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		date, err := parseDate(showDate)
		if err != nil {
			return err
		}

		schedule, err := app.GetScheduleHandler.Handle(cmd.Context(), queries.GetScheduleQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to load schedule: %w", err)
		}

		if schedule == nil || len(schedule.Blocks) == 0 {
			fmt.Printf("Nothing scheduled on %s.\n", date.Format("Mon, Jan 2"))
			return nil
		}

		fmt.Printf("Schedule for %s (%d min booked):\n", date.Format("Mon, Jan 2"), schedule.BookedMinutes)
		for _, block := range schedule.Blocks {
			marker := ""
			if block.FocusTime {
				marker = "  [focus]"
			}
			fmt.Printf("  %s - %s  task %s%s\n",
				block.StartTime.Format("15:04"),
				block.EndTime.Format("15:04"),
				block.TaskID.String()[:8],
				marker)
		}

		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "date (YYYY-MM-DD, defaults to today)")
}
