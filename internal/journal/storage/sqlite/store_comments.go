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

// PutComment persists a comment record.
func (s *Store) PutComment(ctx context.Context, comment domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(comment.ID) == "" {
		return fmt.Errorf("comment id is required")
	}
	if strings.TrimSpace(comment.SlipID) == "" {
		return fmt.Errorf("slip id is required")
	}
	if strings.TrimSpace(comment.AuthorUserID) == "" {
		return fmt.Errorf("author user id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO comments (id, slip_id, author_user_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	content = excluded.content,
	updated_at = excluded.updated_at
`,
		comment.ID,
		comment.SlipID,
		comment.AuthorUserID,
		comment.Content,
		toMillis(comment.CreatedAt),
		toMillis(comment.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put comment: %w", err)
	}
	return nil
}

// GetComment fetches a comment record by ID.
func (s *Store) GetComment(ctx context.Context, commentID string) (domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comment{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Comment{}, fmt.Errorf("storage is not configured")
	}
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return domain.Comment{}, fmt.Errorf("comment id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, slip_id, author_user_id, content, created_at, updated_at
FROM comments
WHERE id = ?
`, commentID)

	var comment domain.Comment
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(
		&comment.ID,
		&comment.SlipID,
		&comment.AuthorUserID,
		&comment.Content,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, storage.ErrNotFound
		}
		return domain.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	comment.CreatedAt = fromMillis(createdAt)
	comment.UpdatedAt = fromMillis(updatedAt)
	return comment, nil
}

// ListCommentsBySlip returns the slip's comments oldest first.
func (s *Store) ListCommentsBySlip(ctx context.Context, slipID string) ([]domain.Comment, error) {
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
SELECT id, slip_id, author_user_id, content, created_at, updated_at
FROM comments
WHERE slip_id = ?
ORDER BY created_at, id
`, slipID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&comment.ID,
			&comment.SlipID,
			&comment.AuthorUserID,
			&comment.Content,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comment.CreatedAt = fromMillis(createdAt)
		comment.UpdatedAt = fromMillis(updatedAt)
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment record.
func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return fmt.Errorf("comment id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
