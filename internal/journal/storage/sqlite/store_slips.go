package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/filter"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// PutSlip persists a slip record.
func (s *Store) PutSlip(ctx context.Context, slip domain.Slip) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(slip.ID) == "" {
		return fmt.Errorf("slip id is required")
	}
	if strings.TrimSpace(slip.ContainerID) == "" {
		return fmt.Errorf("container id is required")
	}
	if strings.TrimSpace(slip.AuthorUserID) == "" {
		return fmt.Errorf("author user id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO slips (id, container_id, author_user_id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	content = excluded.content,
	updated_at = excluded.updated_at
`,
		slip.ID,
		slip.ContainerID,
		slip.AuthorUserID,
		slip.Title,
		slip.Content,
		toMillis(slip.CreatedAt),
		toMillis(slip.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put slip: %w", err)
	}
	return nil
}

// GetSlip fetches a slip record by ID.
func (s *Store) GetSlip(ctx context.Context, slipID string) (domain.Slip, error) {
	if err := ctx.Err(); err != nil {
		return domain.Slip{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Slip{}, fmt.Errorf("storage is not configured")
	}
	slipID = strings.TrimSpace(slipID)
	if slipID == "" {
		return domain.Slip{}, fmt.Errorf("slip id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, container_id, author_user_id, title, content, created_at, updated_at
FROM slips
WHERE id = ?
`, slipID)

	var slip domain.Slip
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(
		&slip.ID,
		&slip.ContainerID,
		&slip.AuthorUserID,
		&slip.Title,
		&slip.Content,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Slip{}, storage.ErrNotFound
		}
		return domain.Slip{}, fmt.Errorf("get slip: %w", err)
	}
	slip.CreatedAt = fromMillis(createdAt)
	slip.UpdatedAt = fromMillis(updatedAt)
	return slip, nil
}

// ListSlips returns the container's slips newest first. A translated filter
// condition narrows the result when present.
func (s *Store) ListSlips(ctx context.Context, containerID string, cond filter.SQLCondition) ([]domain.Slip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	containerID = strings.TrimSpace(containerID)
	if containerID == "" {
		return nil, fmt.Errorf("container id is required")
	}

	query := `
SELECT id, container_id, author_user_id, title, content, created_at, updated_at
FROM slips
WHERE container_id = ?`
	args := []any{containerID}
	if cond.Clause != "" {
		query += " AND " + cond.Clause
		args = append(args, cond.Params...)
	}
	query += `
ORDER BY created_at DESC, id`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slips: %w", err)
	}
	defer rows.Close()

	var slips []domain.Slip
	for rows.Next() {
		var slip domain.Slip
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&slip.ID,
			&slip.ContainerID,
			&slip.AuthorUserID,
			&slip.Title,
			&slip.Content,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan slip row: %w", err)
		}
		slip.CreatedAt = fromMillis(createdAt)
		slip.UpdatedAt = fromMillis(updatedAt)
		slips = append(slips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slip rows: %w", err)
	}
	return slips, nil
}

// DeleteSlip removes a slip. Comments, media records, and reactions cascade.
func (s *Store) DeleteSlip(ctx context.Context, slipID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slipID = strings.TrimSpace(slipID)
	if slipID == "" {
		return fmt.Errorf("slip id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM slips WHERE id = ?`, slipID)
	if err != nil {
		return fmt.Errorf("delete slip: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slip rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
