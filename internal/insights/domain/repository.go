package domain

import (
	"context"

	"github.com/google/uuid"
)

// PatternProvider supplies the productivity pattern for a user. The
// canonical provider rebuilds the pattern from completion history; a
// caching provider may serve a recent snapshot instead.
type PatternProvider interface {
	PatternFor(ctx context.Context, userID uuid.UUID) (*ProductivityPattern, error)
}
