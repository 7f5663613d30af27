package repository

import (
	"context"

	"claimboard/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// ListByPoints must return users sorted by total points descending; the
// persistence layer owns the tie-break for equal totals. Create must reject a
// duplicate name via a uniqueness constraint, not just the caller's pre-check.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	ListByPoints(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
	SetAvatar(ctx context.Context, id, avatarURL string) error
}
