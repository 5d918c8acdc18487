package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/insights/domain"
	shareddomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
)

// SuggestionConfig tunes how historical patterns translate into a
// suggested time block.
type SuggestionConfig struct {
	// DurationDecayMinutes controls how strongly longer estimates are
	// penalized when scoring hours.
	DurationDecayMinutes float64

	// ConfidenceSaturation is the number of same-category completions at
	// which confidence reaches its maximum of 1.
	ConfidenceSaturation int
}

// DefaultSuggestionConfig returns the standard tuning.
func DefaultSuggestionConfig() SuggestionConfig {
	return SuggestionConfig{
		DurationDecayMinutes: 120,
		ConfidenceSaturation: 10,
	}
}

// Suggestion is an advisory placement for a task, derived from the
// user's completion history. It is never written to a schedule directly.
type Suggestion struct {
	TaskID          uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	Hour            int
	AdjustedMinutes int
	Confidence      float64
	Explanation     string
}

// SuggestionEngine scores each hour of day against the user's
// productivity pattern and proposes the best-fitting block for a task.
type SuggestionEngine struct {
	patterns domain.PatternProvider
	clock    shareddomain.Clock
	config   SuggestionConfig
	logger   *slog.Logger
}

func NewSuggestionEngine(
	patterns domain.PatternProvider,
	clock shareddomain.Clock,
	config SuggestionConfig,
	logger *slog.Logger,
) *SuggestionEngine {
	if config.DurationDecayMinutes <= 0 {
		config.DurationDecayMinutes = 120
	}
	if config.ConfidenceSaturation <= 0 {
		config.ConfidenceSaturation = 10
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SuggestionEngine{
		patterns: patterns,
		clock:    clock,
		config:   config,
		logger:   logger,
	}
}

// confidenceTier buckets a confidence score into a word for explanations.
func confidenceTier(confidence float64) string {
	switch {
	case confidence >= 0.7:
		return "high"
	case confidence >= 0.3:
		return "moderate"
	default:
		return "low"
	}
}

// Suggest proposes a time block for the task. Pattern retrieval failures
// degrade to the baseline pattern rather than failing the suggestion.
func (e *SuggestionEngine) Suggest(ctx context.Context, t *task.Task) Suggestion {
	pattern, err := e.patterns.PatternFor(ctx, t.UserID())
	if err != nil {
		e.logger.Warn("pattern unavailable, falling back to baseline",
			slog.String("user_id", t.UserID().String()),
			slog.String("error", err.Error()),
		)
		pattern = domain.BuildPattern(t.UserID(), nil)
	}

	estimated := t.Duration().Minutes()
	category := t.Category()

	bestHour := 0
	bestScore := math.Inf(-1)
	for hour := 0; hour < 24; hour++ {
		score := pattern.CategorySuccessRate(category, hour) *
			pattern.Productivity(hour) *
			math.Exp(-float64(estimated)/e.config.DurationDecayMinutes)
		if score > bestScore {
			bestScore = score
			bestHour = hour
		}
	}

	adjusted := int(math.Round(float64(estimated) * pattern.DurationRatio(category)))
	if adjusted < 1 {
		adjusted = 1
	}

	now := e.clock.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), bestHour, 0, 0, 0, now.Location())
	if !start.After(now) {
		start = start.AddDate(0, 0, 1)
	}

	samples := pattern.Samples(category)
	confidence := float64(samples) / float64(e.config.ConfidenceSaturation)
	if confidence > 1 {
		confidence = 1
	}

	tier := confidenceTier(confidence)
	explanation := fmt.Sprintf(
		"best hour %02d:00 with success rate %.0f%% over %d completed %q tasks (%s confidence)",
		bestHour, pattern.CategorySuccessRate(category, bestHour)*100, samples, category, tier,
	)
	if samples == 0 {
		explanation = fmt.Sprintf("no history for %q tasks yet, using the default midday peak (%s confidence)", category, tier)
	}

	return Suggestion{
		TaskID:          t.ID(),
		StartTime:       start,
		EndTime:         start.Add(time.Duration(adjusted) * time.Minute),
		Hour:            bestHour,
		AdjustedMinutes: adjusted,
		Confidence:      confidence,
		Explanation:     explanation,
	}
}
