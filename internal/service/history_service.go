package service

import (
	"context"
	"strings"

	"claimboard/internal/domain"
	"claimboard/internal/repository"
)

// DefaultFeedLimit caps the global recent-activity feed.
const DefaultFeedLimit = 50

// HistoryService exposes read access to the append-only claim log.
type HistoryService interface {
	// ListRecent returns the newest entries across all users, capped at the
	// configured feed limit.
	ListRecent(ctx context.Context) ([]domain.ClaimHistoryEntry, error)
	// ListForUser returns every entry for one user, newest first, unbounded.
	ListForUser(ctx context.Context, userID string) ([]domain.ClaimHistoryEntry, error)
}

type historyService struct {
	history   repository.ClaimHistoryRepository
	feedLimit int
}

func NewHistoryService(history repository.ClaimHistoryRepository, feedLimit int) HistoryService {
	if feedLimit <= 0 {
		feedLimit = DefaultFeedLimit
	}
	return &historyService{
		history:   history,
		feedLimit: feedLimit,
	}
}

func (s *historyService) ListRecent(ctx context.Context) ([]domain.ClaimHistoryEntry, error) {
	return s.history.ListRecent(ctx, s.feedLimit)
}

func (s *historyService) ListForUser(ctx context.Context, userID string) ([]domain.ClaimHistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	return s.history.ListByUser(ctx, userID)
}
