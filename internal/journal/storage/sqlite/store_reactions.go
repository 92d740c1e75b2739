package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// UpsertReaction inserts the reaction or replaces the type for an existing
// (slip, user) pair. The upsert absorbs two racing inserts into one row, so
// no retry loop is needed above it.
func (s *Store) UpsertReaction(ctx context.Context, reaction domain.Reaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(reaction.SlipID) == "" {
		return fmt.Errorf("slip id is required")
	}
	if strings.TrimSpace(reaction.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(reaction.ReactionType) == "" {
		return fmt.Errorf("reaction type is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO slip_reactions (slip_id, user_id, reaction_type, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(slip_id, user_id) DO UPDATE SET
	reaction_type = excluded.reaction_type,
	created_at = excluded.created_at
`,
		reaction.SlipID,
		reaction.UserID,
		reaction.ReactionType,
		toMillis(reaction.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert reaction: %w", err)
	}
	return nil
}

// GetReaction fetches one user's reaction on one slip.
func (s *Store) GetReaction(ctx context.Context, slipID, userID string) (domain.Reaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reaction{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Reaction{}, fmt.Errorf("storage is not configured")
	}
	slipID = strings.TrimSpace(slipID)
	userID = strings.TrimSpace(userID)
	if slipID == "" {
		return domain.Reaction{}, fmt.Errorf("slip id is required")
	}
	if userID == "" {
		return domain.Reaction{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT slip_id, user_id, reaction_type, created_at
FROM slip_reactions
WHERE slip_id = ? AND user_id = ?
`, slipID, userID)

	var reaction domain.Reaction
	var createdAt int64
	if err := row.Scan(
		&reaction.SlipID,
		&reaction.UserID,
		&reaction.ReactionType,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reaction{}, storage.ErrNotFound
		}
		return domain.Reaction{}, fmt.Errorf("get reaction: %w", err)
	}
	reaction.CreatedAt = fromMillis(createdAt)
	return reaction, nil
}

// DeleteReaction removes one user's reaction on one slip.
func (s *Store) DeleteReaction(ctx context.Context, slipID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slipID = strings.TrimSpace(slipID)
	userID = strings.TrimSpace(userID)
	if slipID == "" {
		return fmt.Errorf("slip id is required")
	}
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM slip_reactions
WHERE slip_id = ? AND user_id = ?
`, slipID, userID)
	if err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reaction rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListReactionsBySlip returns the slip's reactions oldest first.
func (s *Store) ListReactionsBySlip(ctx context.Context, slipID string) ([]domain.Reaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	slipID = strings.TrimSpace(slipID)
	if slipID == "" {
		return nil, fmt.Errorf("slip id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT slip_id, user_id, reaction_type, created_at
FROM slip_reactions
WHERE slip_id = ?
ORDER BY created_at, user_id
`, slipID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var reaction domain.Reaction
		var createdAt int64
		if err := rows.Scan(
			&reaction.SlipID,
			&reaction.UserID,
			&reaction.ReactionType,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan reaction row: %w", err)
		}
		reaction.CreatedAt = fromMillis(createdAt)
		reactions = append(reactions, reaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reaction rows: %w", err)
	}
	return reactions, nil
}

// CountReactionsBySlip returns reaction totals grouped by type label.
func (s *Store) CountReactionsBySlip(ctx context.Context, slipID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	slipID = strings.TrimSpace(slipID)
	if slipID == "" {
		return nil, fmt.Errorf("slip id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT reaction_type, COUNT(*)
FROM slip_reactions
WHERE slip_id = ?
GROUP BY reaction_type
`, slipID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reactionType string
		var count int
		if err := rows.Scan(&reactionType, &count); err != nil {
			return nil, fmt.Errorf("scan reaction count row: %w", err)
		}
		counts[reactionType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reaction count rows: %w", err)
	}
	return counts, nil
}
