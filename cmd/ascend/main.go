package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ascendhq/ascend/adapter/cli"
	"github.com/ascendhq/ascend/adapter/cli/schedule"
	cliSettings "github.com/ascendhq/ascend/adapter/cli/settings"
	"github.com/ascendhq/ascend/adapter/cli/task"
	"github.com/ascendhq/ascend/internal/app"
	"github.com/ascendhq/ascend/pkg/config"
	"github.com/ascendhq/ascend/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		if cfg.OutboxProcessorEnabled {
			go container.OutboxProcessor.Start(ctx)
		}

		cliApp = &cli.App{
			CreateTaskHandler:         container.CreateTaskHandler,
			CompleteTaskHandler:       container.CompleteTaskHandler,
			ListTasksHandler:          container.ListTasksHandler,
			ScheduleTaskHandler:       container.ScheduleTaskHandler,
			RescheduleTaskHandler:     container.RescheduleTaskHandler,
			FindAvailableSlotsHandler: container.FindAvailableSlotsHandler,
			GetScheduleHandler:        container.GetScheduleHandler,
			SuggestTimeBlockHandler:   container.SuggestTimeBlockHandler,
			SettingsService:           container.SettingsService,
			CurrentUserID:             container.CurrentUserID,
		}
	}

	cli.SetApp(cliApp)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(schedule.Cmd)
	cli.AddCommand(cliSettings.Cmd)

	cli.Execute()
}
