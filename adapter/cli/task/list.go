package task

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/adapter/cli"
	"github.com/ascendhq/ascend/internal/tasks/application/queries"
)

var showAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks ranked by urgency",
	Long: `List tasks ranked by urgency, most pressing first.

By default only pending tasks are shown; --all includes scheduled and
completed tasks too.

Examples:
  ascend task list
  ascend task list --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:      app.CurrentUserID,
			PendingOnly: !showAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tDURATION\tDEADLINE\tSTATUS\tURGENCY")
		for _, t := range tasks {
			deadline := "-"
			if t.Deadline != nil {
				deadline = t.Deadline.Format("Jan 2 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%dm\t%s\t%s\t%.0f\n",
				t.ID.String()[:8], t.Title, t.Priority, t.DurationMinutes, deadline, t.Status, t.UrgencyScore)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include scheduled and completed tasks")
}
