package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ascendhq/ascend/adapter/cli"
	"github.com/ascendhq/ascend/internal/tasks/application/commands"
)

var (
	priority string
	duration int
	category string
	deadline string
	dependsOn []string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task with an estimated duration and optional properties.

Examples:
  ascend task add "Write quarterly report" -d 90
  ascend task add "Review PR" -d 30 -p high -c code-review
  ascend task add "Publish release" -d 45 --deadline 2026-09-05 --depends-on 1b4e28ba`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		createCmd := commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Title:           args[0],
			Category:        category,
			Priority:        priority,
			DurationMinutes: duration,
		}

		if deadline != "" {
			parsed, err := time.Parse("2006-01-02", deadline)
			if err != nil {
				return fmt.Errorf("invalid deadline format (use YYYY-MM-DD): %w", err)
			}
			// Deadlines land at end of day.
			endOfDay := parsed.Add(24*time.Hour - time.Second)
			createCmd.Deadline = &endOfDay
		}

		for _, dep := range dependsOn {
			id, err := uuid.Parse(dep)
			if err != nil {
				return fmt.Errorf("invalid dependency ID %q: %w", dep, err)
			}
			createCmd.Dependencies = append(createCmd.Dependencies, id)
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Println("Task created!")
		fmt.Printf("  Title: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.TaskID)
		fmt.Printf("  Duration: %d min\n", duration)
		if priority != "" {
			fmt.Printf("  Priority: %s\n", priority)
		}
		if createCmd.Deadline != nil {
			fmt.Printf("  Deadline: %s\n", createCmd.Deadline.Format("Mon, Jan 2 2006"))
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "medium", "priority (high, medium, low)")
	addCmd.Flags().IntVarP(&duration, "duration", "d", 30, "estimated duration in minutes")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "task category (used for suggestions)")
	addCmd.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	addCmd.Flags().StringSliceVar(&dependsOn, "depends-on", nil, "IDs of tasks this one depends on")
}
