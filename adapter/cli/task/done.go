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
	startedAt  string
	finishedAt string
	abandoned  bool
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed, recording when the work actually happened.
The actual times feed future scheduling suggestions.

Without --started/--finished the task is assumed to have occupied the
last 30 minutes.

Examples:
  ascend task done 1b4e28ba
  ascend task done 1b4e28ba --started "2026-08-30 09:00" --finished "2026-08-30 10:30"
  ascend task done 1b4e28ba --abandoned`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		now := time.Now()
		completeCmd := commands.CompleteTaskCommand{
			TaskID:      taskID,
			UserID:      app.CurrentUserID,
			ActualStart: now.Add(-30 * time.Minute),
			ActualEnd:   now,
			Success:     !abandoned,
		}

		if startedAt != "" {
			parsed, err := time.ParseInLocation("2006-01-02 15:04", startedAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid start time (use \"YYYY-MM-DD HH:MM\"): %w", err)
			}
			completeCmd.ActualStart = parsed
		}
		if finishedAt != "" {
			parsed, err := time.ParseInLocation("2006-01-02 15:04", finishedAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid finish time (use \"YYYY-MM-DD HH:MM\"): %w", err)
			}
			completeCmd.ActualEnd = parsed
		}

		if err := app.CompleteTaskHandler.Handle(cmd.Context(), completeCmd); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Task %s completed.\n", args[0])
		return nil
	},
}

func init() {
	doneCmd.Flags().StringVar(&startedAt, "started", "", "when work started (YYYY-MM-DD HH:MM)")
	doneCmd.Flags().StringVar(&finishedAt, "finished", "", "when work finished (YYYY-MM-DD HH:MM)")
	doneCmd.Flags().BoolVar(&abandoned, "abandoned", false, "record as unsuccessful")
}
