package domain

import "time"

// Reward bounds for a single claim, inclusive.
const (
	MinReward = 1
	MaxReward = 10
)

// ClaimHistoryEntry is an immutable record of one completed claim. UserName and
// TotalPointsAfterClaim are snapshots taken at claim time, never re-synced.
type ClaimHistoryEntry struct {
	ID                    string
	UserID                string
	UserName              string
	PointsAwarded         int
	TotalPointsAfterClaim int
	Timestamp             time.Time
}
