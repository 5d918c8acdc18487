package schedule

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/adapter/cli"
	"github.com/ascendhq/ascend/internal/scheduling/application/commands"
	"github.com/ascendhq/ascend/internal/scheduling/domain"
)

var planDate string

var planCmd = &cobra.Command{
	Use:   "plan [task-id]",
	Short: "Schedule a task into the earliest free slot",
	Long: `Schedule a task into the earliest slot within your working hours
that fits its estimated duration.

Examples:
  ascend schedule plan 1b4e28ba
  ascend schedule plan 1b4e28ba --date 2026-09-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ScheduleTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		date, err := parseDate(planDate)
		if err != nil {
			return err
		}

		result, err := app.ScheduleTaskHandler.Handle(cmd.Context(), commands.ScheduleTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: taskID,
			Date:   date,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoAvailability):
				return fmt.Errorf("no availability on %s (outside working hours or fully booked)", date.Format("Jan 2"))
			case errors.Is(err, domain.ErrNoSuitableSlot):
				return fmt.Errorf("no free slot on %s is long enough for this task", date.Format("Jan 2"))
			default:
				return fmt.Errorf("failed to schedule task: %w", err)
			}
		}

		fmt.Println("Task scheduled!")
		fmt.Printf("  Block: %s\n", result.BlockID)
		fmt.Printf("  When: %s - %s\n",
			result.StartTime.Format("Mon, Jan 2 15:04"),
			result.EndTime.Format("15:04"))
		if result.FocusTime {
			fmt.Println("  Focus time: yes")
		}

		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planDate, "date", "", "target date (YYYY-MM-DD, defaults to today)")
}
