package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"claimboard/internal/domain"
	"claimboard/internal/repository"
)

const createClaimHistoryTable = `
CREATE TABLE IF NOT EXISTS claim_history (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_name TEXT NOT NULL,
	points_awarded INTEGER NOT NULL CHECK (points_awarded BETWEEN 1 AND 10),
	total_points_after_claim INTEGER NOT NULL,
	timestamp DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_claim_history_timestamp ON claim_history(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_claim_history_user_id ON claim_history(user_id);
`

type ClaimHistoryRepository struct {
	db *sql.DB
}

func NewClaimHistoryRepository(db *sql.DB) repository.ClaimHistoryRepository {
	return &ClaimHistoryRepository{db: db}
}

func (r *ClaimHistoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createClaimHistoryTable); err != nil {
		return fmt.Errorf("create claim_history table: %w", err)
	}
	return nil
}

// ApplyClaim writes the user's new total and the history entry together so a
// crash cannot leave one without the other.
func (r *ClaimHistoryRepository) ApplyClaim(ctx context.Context, user *domain.User, entry *domain.ClaimHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if _, err := tx.ExecContext(ctx, `
UPDATE users SET total_points = ?, updated_at = ? WHERE id = ?`,
		user.TotalPoints,
		user.UpdatedAt,
		user.ID,
	); err != nil {
		return fmt.Errorf("update user points: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO claim_history (id, user_id, user_name, points_awarded, total_points_after_claim, timestamp)
VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.UserName,
		entry.PointsAwarded,
		entry.TotalPointsAfterClaim,
		entry.Timestamp,
	); err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *ClaimHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.ClaimHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, user_name, points_awarded, total_points_after_claim, timestamp
FROM claim_history
ORDER BY timestamp DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query claim history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *ClaimHistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.ClaimHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, user_name, points_awarded, total_points_after_claim, timestamp
FROM claim_history
WHERE user_id = ?
ORDER BY timestamp DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user claim history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.ClaimHistoryEntry, error) {
	var entries []domain.ClaimHistoryEntry
	for rows.Next() {
		var entry domain.ClaimHistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.UserName,
			&entry.PointsAwarded,
			&entry.TotalPointsAfterClaim,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
