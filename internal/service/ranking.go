package service

import "claimboard/internal/domain"

// Rank annotates an already point-sorted user list with 1-based positions.
// Pure and recomputed on every read; nothing about the ranking is persisted.
// Equal totals keep the input order, whatever the storage sort chose.
func Rank(users []domain.User) []domain.RankedUser {
	ranked := make([]domain.RankedUser, len(users))
	for i, user := range users {
		ranked[i] = domain.RankedUser{User: user, Rank: i + 1}
	}
	return ranked
}
