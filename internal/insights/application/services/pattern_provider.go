package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/insights/domain"
)

// HistoryPatternProvider rebuilds the productivity pattern from the full
// completion history on every call. Deterministic for a given history
// snapshot; wrap it in a cache when rebuild cost matters.
type HistoryPatternProvider struct {
	history domain.HistoryRepository
}

func NewHistoryPatternProvider(history domain.HistoryRepository) *HistoryPatternProvider {
	return &HistoryPatternProvider{history: history}
}

func (p *HistoryPatternProvider) PatternFor(ctx context.Context, userID uuid.UUID) (*domain.ProductivityPattern, error) {
	records, err := p.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading completion history: %w", err)
	}
	return domain.BuildPattern(userID, records), nil
}
