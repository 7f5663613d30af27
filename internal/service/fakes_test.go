package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"claimboard/internal/domain"
	"claimboard/internal/repository"
)

// In-memory repositories mimicking the sqlite implementations: copies in and
// out, unique name enforcement, points-descending sort with insertion-order
// tie-break.

type fakeUserRepo struct {
	users []domain.User
	fail  error
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.fail != nil {
		return r.fail
	}
	for _, u := range r.users {
		if u.Name == user.Name {
			return fmt.Errorf("%w: %s", repository.ErrDuplicateName, user.Name)
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	for _, u := range r.users {
		if u.ID == id {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	for _, u := range r.users {
		if u.Name == name {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListByPoints(ctx context.Context) ([]domain.User, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	users := make([]domain.User, len(r.users))
	copy(users, r.users)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalPoints > users[j].TotalPoints
	})
	return users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	if r.fail != nil {
		return 0, r.fail
	}
	return len(r.users), nil
}

func (r *fakeUserRepo) SetAvatar(ctx context.Context, id, avatarURL string) error {
	if r.fail != nil {
		return r.fail
	}
	for i := range r.users {
		if r.users[i].ID == id {
			url := avatarURL
			r.users[i].Avatar = &url
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeHistoryRepo struct {
	userRepo *fakeUserRepo
	entries  []domain.ClaimHistoryEntry
	fail     error
}

func (r *fakeHistoryRepo) Init(ctx context.Context) error { return nil }

func (r *fakeHistoryRepo) ApplyClaim(ctx context.Context, user *domain.User, entry *domain.ClaimHistoryEntry) error {
	if r.fail != nil {
		return r.fail
	}
	if r.userRepo != nil {
		found := false
		for i := range r.userRepo.users {
			if r.userRepo.users[i].ID == user.ID {
				r.userRepo.users[i].TotalPoints = user.TotalPoints
				r.userRepo.users[i].UpdatedAt = user.UpdatedAt
				found = true
			}
		}
		if !found {
			return errors.New("apply claim: no such user")
		}
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// ListRecent returns newest first: entries are appended in claim order.
func (r *fakeHistoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.ClaimHistoryEntry, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	var entries []domain.ClaimHistoryEntry
	for i := len(r.entries) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, r.entries[i])
	}
	return entries, nil
}

func (r *fakeHistoryRepo) ListByUser(ctx context.Context, userID string) ([]domain.ClaimHistoryEntry, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	var entries []domain.ClaimHistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			entries = append(entries, r.entries[i])
		}
	}
	return entries, nil
}

var _ repository.ClaimHistoryRepository = (*fakeHistoryRepo)(nil)
