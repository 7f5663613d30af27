package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimboard/internal/domain"
	"claimboard/internal/repository"
)

// RewardFunc produces the points awarded by a single claim. Implementations
// must stay within [domain.MinReward, domain.MaxReward].
type RewardFunc func() int

// ClaimResult carries everything a successful claim reports back.
type ClaimResult struct {
	PointsAwarded int
	User          domain.User
	Leaderboard   []domain.RankedUser
}

// ClaimService awards random points to a user and records the claim.
type ClaimService interface {
	Claim(ctx context.Context, userID string) (*ClaimResult, error)
}

type claimService struct {
	users   repository.UserRepository
	history repository.ClaimHistoryRepository
	reward  RewardFunc
}

// NewClaimService builds a claim service. A nil reward falls back to a uniform
// draw over [1, 10].
func NewClaimService(users repository.UserRepository, history repository.ClaimHistoryRepository, reward RewardFunc) ClaimService {
	if reward == nil {
		reward = defaultReward
	}
	return &claimService{
		users:   users,
		history: history,
		reward:  reward,
	}
}

func defaultReward() int {
	return rand.IntN(domain.MaxReward-domain.MinReward+1) + domain.MinReward
}

// Claim reads the user, adds a random reward to its total, and persists the
// updated user together with a history entry in one transaction. Concurrent
// claims for the same user are not serialized here; the last write wins.
func (s *claimService) Claim(ctx context.Context, userID string) (*ClaimResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	points := s.reward()
	now := time.Now().UTC()
	user.TotalPoints += points
	user.UpdatedAt = now

	entry := &domain.ClaimHistoryEntry{
		ID:                    uuid.NewString(),
		UserID:                user.ID,
		UserName:              user.Name,
		PointsAwarded:         points,
		TotalPointsAfterClaim: user.TotalPoints,
		Timestamp:             now,
	}
	if err := s.history.ApplyClaim(ctx, user, entry); err != nil {
		return nil, err
	}

	users, err := s.users.ListByPoints(ctx)
	if err != nil {
		return nil, err
	}

	return &ClaimResult{
		PointsAwarded: points,
		User:          *user,
		Leaderboard:   Rank(users),
	}, nil
}
