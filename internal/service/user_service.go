package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimboard/internal/domain"
	"claimboard/internal/repository"
)

// defaultUsers is the seed roster inserted on first start against an empty
// user collection.
var defaultUsers = []string{
	"Rahul", "Kamal", "Sanak", "Priya", "Amit",
	"Sneha", "Ravi", "Pooja", "Vikash", "Anjali",
}

// UserService describes directory operations over leaderboard participants.
type UserService interface {
	List(ctx context.Context) ([]domain.RankedUser, error)
	Create(ctx context.Context, name string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	SetAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error)
	// Seed inserts the default roster when no users exist. Returns the number
	// of users inserted (zero when the bootstrap is skipped).
	Seed(ctx context.Context) (int, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// List returns every user annotated with its current rank.
func (s *userService) List(ctx context.Context) ([]domain.RankedUser, error) {
	users, err := s.users.ListByPoints(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(users), nil
}

func (s *userService) Create(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	// Point-in-time existence check; the unique name constraint backstops the
	// race between two concurrent creates.
	if _, err := s.users.GetByName(ctx, name); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        name,
		TotalPoints: 0,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrUserIDRequired
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) SetAvatar(ctx context.Context, id, avatarURL string) (*domain.User, error) {
	if err := s.users.SetAvatar(ctx, id, avatarURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) Seed(ctx context.Context) (int, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for _, name := range defaultUsers {
		user := &domain.User{
			ID:          uuid.NewString(),
			Name:        name,
			TotalPoints: 0,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return 0, err
		}
	}
	return len(defaultUsers), nil
}
