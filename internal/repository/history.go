package repository

import (
	"context"

	"claimboard/internal/domain"
)

// ClaimHistoryRepository defines persistence operations for the append-only
// claim log. Both list operations return entries newest first.
type ClaimHistoryRepository interface {
	Init(ctx context.Context) error
	// ApplyClaim persists the user's new point total and the matching history
	// entry in a single transaction.
	ApplyClaim(ctx context.Context, user *domain.User, entry *domain.ClaimHistoryEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.ClaimHistoryEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ClaimHistoryEntry, error)
}
