package cli

import (
	"github.com/google/uuid"

	identityServices "github.com/ascendhq/ascend/internal/identity/application/services"
	insightsQueries "github.com/ascendhq/ascend/internal/insights/application/queries"
	scheduleCommands "github.com/ascendhq/ascend/internal/scheduling/application/commands"
	scheduleQueries "github.com/ascendhq/ascend/internal/scheduling/application/queries"
	taskCommands "github.com/ascendhq/ascend/internal/tasks/application/commands"
	taskQueries "github.com/ascendhq/ascend/internal/tasks/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Task handlers
	CreateTaskHandler   *taskCommands.CreateTaskHandler
	CompleteTaskHandler *taskCommands.CompleteTaskHandler
	ListTasksHandler    *taskQueries.ListTasksHandler

	// Scheduling handlers
	ScheduleTaskHandler       *scheduleCommands.ScheduleTaskHandler
	RescheduleTaskHandler     *scheduleCommands.RescheduleTaskHandler
	FindAvailableSlotsHandler *scheduleQueries.FindAvailableSlotsHandler
	GetScheduleHandler        *scheduleQueries.GetScheduleHandler

	// Insights handlers
	SuggestTimeBlockHandler *insightsQueries.SuggestTimeBlockHandler

	// Settings
	SettingsService *identityServices.SettingsService

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

var app *App

// SetApp sets the CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the CLI application instance, or nil when the container
// failed to initialize.
func GetApp() *App {
	return app
}
