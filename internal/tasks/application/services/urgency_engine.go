package services

import (
	"fmt"
	"sort"
	"time"

	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
)

// UrgencyEngineConfig tunes how task attributes combine into a score. The
// default values are calibration choices, not derived constants; recalibrate
// them freely.
type UrgencyEngineConfig struct {
	HighPriorityBase   float64
	MediumPriorityBase float64
	LowPriorityBase    float64

	DeadlineWithin24hBonus  float64
	DeadlineWithin72hBonus  float64
	DeadlineWithin168hBonus float64

	DependencyBonus float64

	// ShortTaskTiebreak is divided by the estimated minutes so that among
	// equally urgent tasks the shorter one sorts first.
	ShortTaskTiebreak float64
}

// DefaultUrgencyEngineConfig returns the standard scoring constants.
func DefaultUrgencyEngineConfig() UrgencyEngineConfig {
	return UrgencyEngineConfig{
		HighPriorityBase:        100,
		MediumPriorityBase:      50,
		LowPriorityBase:         25,
		DeadlineWithin24hBonus:  100,
		DeadlineWithin72hBonus:  50,
		DeadlineWithin168hBonus: 25,
		DependencyBonus:         25,
		ShortTaskTiebreak:       10,
	}
}

// UrgencyEngine computes urgency scores used to rank tasks before scheduling.
// Scoring is a pure function of task attributes plus the injected clock; it
// does not influence slot selection within a single scheduling call.
type UrgencyEngine struct {
	config UrgencyEngineConfig
	clock  sharedDomain.Clock
}

// NewUrgencyEngine creates a new engine with the given configuration.
func NewUrgencyEngine(config UrgencyEngineConfig, clock sharedDomain.Clock) *UrgencyEngine {
	if clock == nil {
		clock = sharedDomain.SystemClock{}
	}
	return &UrgencyEngine{config: config, clock: clock}
}

// Score computes the urgency score and a human-readable explanation for a task.
func (e *UrgencyEngine) Score(t *task.Task) (float64, string) {
	base := e.priorityBase(t.Priority())
	deadline := e.deadlineBonus(t.Deadline())

	dependency := 0.0
	if len(t.Dependencies()) > 0 {
		dependency = e.config.DependencyBonus
	}

	tiebreak := e.config.ShortTaskTiebreak / float64(t.Duration().Minutes())

	score := base + deadline + dependency + tiebreak

	explanation := fmt.Sprintf(
		"priority=%.0f deadline=%.0f dependencies=%.0f tiebreak=%.2f",
		base, deadline, dependency, tiebreak,
	)

	return score, explanation
}

// Rank sorts tasks by descending urgency score.
func (e *UrgencyEngine) Rank(tasks []*task.Task) []*task.Task {
	ranked := make([]*task.Task, len(tasks))
	copy(ranked, tasks)

	scores := make(map[*task.Task]float64, len(ranked))
	for _, t := range ranked {
		score, _ := e.Score(t)
		scores[t] = score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	return ranked
}

func (e *UrgencyEngine) priorityBase(p value_objects.Priority) float64 {
	switch p {
	case value_objects.PriorityHigh:
		return e.config.HighPriorityBase
	case value_objects.PriorityMedium:
		return e.config.MediumPriorityBase
	default:
		return e.config.LowPriorityBase
	}
}

func (e *UrgencyEngine) deadlineBonus(deadline *time.Time) float64 {
	if deadline == nil {
		return 0
	}

	until := deadline.Sub(e.clock.Now())
	switch {
	case until <= 24*time.Hour:
		return e.config.DeadlineWithin24hBonus
	case until <= 72*time.Hour:
		return e.config.DeadlineWithin72hBonus
	case until <= 168*time.Hour:
		return e.config.DeadlineWithin168hBonus
	default:
		return 0
	}
}
