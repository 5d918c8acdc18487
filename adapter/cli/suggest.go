package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/internal/insights/application/queries"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [task-id]",
	Short: "Suggest when to work on a task",
	Long: `Suggest a time block for a task based on your completion history:
when similar work has gone well, and how long it usually really takes.

The suggestion is advisory; use "ascend schedule plan" to book it.

Examples:
  ascend suggest 1b4e28ba`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SuggestTimeBlockHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		suggestion, err := app.SuggestTimeBlockHandler.Handle(cmd.Context(), queries.SuggestTimeBlockQuery{
			UserID: app.CurrentUserID,
			TaskID: taskID,
		})
		if err != nil {
			return fmt.Errorf("failed to build suggestion: %w", err)
		}

		fmt.Println("Suggested block:")
		fmt.Printf("  When: %s - %s\n",
			suggestion.StartTime.Format("Mon, Jan 2 15:04"),
			suggestion.EndTime.Format("15:04"))
		fmt.Printf("  Adjusted duration: %d min\n", suggestion.AdjustedMinutes)
		fmt.Printf("  Confidence: %.0f%%\n", suggestion.Confidence*100)
		fmt.Printf("  Why: %s\n", suggestion.Explanation)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
