package domain

import "time"

// User is a leaderboard participant. TotalPoints only ever grows; the sole
// mutation path is a successful claim.
type User struct {
	ID          string
	Name        string
	TotalPoints int
	Avatar      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RankedUser is a User annotated with its 1-based leaderboard position.
type RankedUser struct {
	User
	Rank int
}
