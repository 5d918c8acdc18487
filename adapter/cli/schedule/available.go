package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/adapter/cli"
	"github.com/ascendhq/ascend/internal/scheduling/application/queries"
)

var availableDate string

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "Show free slots for a day",
	Long: `Show the free intervals within your working hours for a day,
after subtracting everything already scheduled.

Examples:
  ascend schedule available
  ascend schedule available --date 2026-09-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FindAvailableSlotsHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		date, err := parseDate(availableDate)
		if err != nil {
			return err
		}

		slots, err := app.FindAvailableSlotsHandler.Handle(cmd.Context(), queries.FindAvailableSlotsQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve availability: %w", err)
		}

		if len(slots) == 0 {
			fmt.Printf("No availability on %s.\n", date.Format("Mon, Jan 2"))
			return nil
		}

		fmt.Printf("Free slots on %s:\n", date.Format("Mon, Jan 2"))
		for _, slot := range slots {
			fmt.Printf("  %s - %s  (%d min)\n",
				slot.Start.Format("15:04"),
				slot.End.Format("15:04"),
				slot.DurationMin)
		}

		return nil
	},
}

func init() {
	availableCmd.Flags().StringVar(&availableDate, "date", "", "date (YYYY-MM-DD, defaults to today)")
}
