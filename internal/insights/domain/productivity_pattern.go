package domain

import (
	"math"

	"github.com/google/uuid"
)

const hoursPerDay = 24

// ProductivityPattern is a snapshot of a user's historical performance,
// aggregated per hour of day and per task category. It is a pure function
// of the completion history it was built from; rebuilding from the same
// records yields the same pattern.
type ProductivityPattern struct {
	UserID uuid.UUID `json:"user_id"`

	// Hourly holds the success rate observed at each hour of day, or a
	// baseline value for hours without history. Values are in [0, 1].
	Hourly [hoursPerDay]float64 `json:"hourly"`

	// CategoryRates holds the per-category success rate at each hour.
	// Hours without samples for a category carry the neutral value 1,
	// letting the hourly rate dominate the score there.
	CategoryRates map[string][hoursPerDay]float64 `json:"category_rates"`

	// CategorySamples counts completions per category, used for
	// confidence scoring.
	CategorySamples map[string]int `json:"category_samples"`

	// DurationRatios holds the mean actual/estimated duration ratio per
	// category; 1 when a category has no usable history.
	DurationRatios map[string]float64 `json:"duration_ratios"`

	TotalSamples int `json:"total_samples"`
}

// BuildPattern aggregates a completion history into a pattern. An empty
// history yields the baseline curve everywhere.
func BuildPattern(userID uuid.UUID, history []TaskCompletion) *ProductivityPattern {
	p := &ProductivityPattern{
		UserID:          userID,
		CategoryRates:   make(map[string][hoursPerDay]float64),
		CategorySamples: make(map[string]int),
		DurationRatios:  make(map[string]float64),
		TotalSamples:    len(history),
	}

	var hourTotal, hourSuccess [hoursPerDay]int
	catHourTotal := make(map[string]*[hoursPerDay]int)
	catHourSuccess := make(map[string]*[hoursPerDay]int)
	ratioSum := make(map[string]float64)
	ratioCount := make(map[string]int)

	for _, rec := range history {
		hour := rec.ActualStart.Hour()
		hourTotal[hour]++
		if rec.Success {
			hourSuccess[hour]++
		}

		if _, ok := catHourTotal[rec.Category]; !ok {
			catHourTotal[rec.Category] = &[hoursPerDay]int{}
			catHourSuccess[rec.Category] = &[hoursPerDay]int{}
		}
		catHourTotal[rec.Category][hour]++
		if rec.Success {
			catHourSuccess[rec.Category][hour]++
		}
		p.CategorySamples[rec.Category]++

		if rec.EstimatedMinutes > 0 && rec.ActualMinutes > 0 {
			ratioSum[rec.Category] += float64(rec.ActualMinutes) / float64(rec.EstimatedMinutes)
			ratioCount[rec.Category]++
		}
	}

	for h := 0; h < hoursPerDay; h++ {
		if hourTotal[h] > 0 {
			p.Hourly[h] = float64(hourSuccess[h]) / float64(hourTotal[h])
		} else {
			p.Hourly[h] = baselineProductivity(h)
		}
	}

	for cat, totals := range catHourTotal {
		var rates [hoursPerDay]float64
		successes := catHourSuccess[cat]
		for h := 0; h < hoursPerDay; h++ {
			if totals[h] > 0 {
				rates[h] = float64(successes[h]) / float64(totals[h])
			} else {
				rates[h] = 1
			}
		}
		p.CategoryRates[cat] = rates
	}

	for cat, count := range ratioCount {
		p.DurationRatios[cat] = ratioSum[cat] / float64(count)
	}

	return p
}

// Productivity returns the success rate at the given hour of day.
func (p *ProductivityPattern) Productivity(hour int) float64 {
	if hour < 0 || hour >= hoursPerDay {
		return 0
	}
	return p.Hourly[hour]
}

// CategorySuccessRate returns the success rate for a category at the
// given hour. Categories with no history get the neutral value 1.
func (p *ProductivityPattern) CategorySuccessRate(category string, hour int) float64 {
	if hour < 0 || hour >= hoursPerDay {
		return 0
	}
	rates, ok := p.CategoryRates[category]
	if !ok {
		return 1
	}
	return rates[hour]
}

// DurationRatio returns the mean actual/estimated ratio for a category,
// or 1 when the category has no usable history.
func (p *ProductivityPattern) DurationRatio(category string) float64 {
	ratio, ok := p.DurationRatios[category]
	if !ok || ratio <= 0 {
		return 1
	}
	return ratio
}

// Samples returns the number of completions recorded for a category.
func (p *ProductivityPattern) Samples(category string) int {
	return p.CategorySamples[category]
}

// baselineProductivity is the default curve used for hours without any
// history: a sinusoid peaking at midday and bottoming out at midnight.
func baselineProductivity(hour int) float64 {
	v := 0.5 + 0.5*math.Sin((float64(hour)-6)*math.Pi/12)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
