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

var moveDate string

var moveCmd = &cobra.Command{
	Use:   "move [task-id]",
	Short: "Move a scheduled task to another day",
	Long: `Move a task's time block to another day. The existing block is
removed and the task is re-planned into the earliest free slot there.

Examples:
  ascend schedule move 1b4e28ba --date 2026-09-02`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RescheduleTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		date, err := parseDate(moveDate)
		if err != nil {
			return err
		}

		result, err := app.RescheduleTaskHandler.Handle(cmd.Context(), commands.RescheduleTaskCommand{
			UserID:  app.CurrentUserID,
			TaskID:  taskID,
			NewDate: date,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoAvailability):
				return fmt.Errorf("no availability on %s", date.Format("Jan 2"))
			case errors.Is(err, domain.ErrNoSuitableSlot):
				return fmt.Errorf("no free slot on %s is long enough for this task", date.Format("Jan 2"))
			default:
				return fmt.Errorf("failed to move task: %w", err)
			}
		}

		fmt.Println("Task moved!")
		fmt.Printf("  When: %s - %s\n",
			result.StartTime.Format("Mon, Jan 2 15:04"),
			result.EndTime.Format("15:04"))

		return nil
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveDate, "date", "", "new date (YYYY-MM-DD, defaults to today)")
}
