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

// PutMembership inserts a membership row.
func (s *Store) PutMembership(ctx context.Context, membership domain.Membership) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(membership.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(membership.ContainerID) == "" {
		return fmt.Errorf("container id is required")
	}
	role := domain.RoleLabel(membership.Role)
	if role == "" {
		return fmt.Errorf("role is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO memberships (user_id, container_id, role, joined_at)
VALUES (?, ?, ?, ?)
`,
		membership.UserID,
		membership.ContainerID,
		role,
		toMillis(membership.JoinedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put membership: %w", err)
	}
	return nil
}

// GetMembership fetches one user's membership in one container.
func (s *Store) GetMembership(ctx context.Context, userID, containerID string) (domain.Membership, error) {
	if err := ctx.Err(); err != nil {
		return domain.Membership{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Membership{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	containerID = strings.TrimSpace(containerID)
	if userID == "" {
		return domain.Membership{}, fmt.Errorf("user id is required")
	}
	if containerID == "" {
		return domain.Membership{}, fmt.Errorf("container id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT user_id, container_id, role, joined_at
FROM memberships
WHERE user_id = ? AND container_id = ?
`, userID, containerID)

	var membership domain.Membership
	var role string
	var joinedAt int64
	if err := row.Scan(
		&membership.UserID,
		&membership.ContainerID,
		&role,
		&joinedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Membership{}, storage.ErrNotFound
		}
		return domain.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	membership.Role = domain.RoleFromLabel(role)
	membership.JoinedAt = fromMillis(joinedAt)
	return membership, nil
}

// DeleteMembership removes one user's membership in one container.
func (s *Store) DeleteMembership(ctx context.Context, userID, containerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	containerID = strings.TrimSpace(containerID)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if containerID == "" {
		return fmt.Errorf("container id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM memberships
WHERE user_id = ? AND container_id = ?
`, userID, containerID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListMembers returns every membership of the container ordered by join
// time.
func (s *Store) ListMembers(ctx context.Context, containerID string) ([]domain.Membership, error) {
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

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT user_id, container_id, role, joined_at
FROM memberships
WHERE container_id = ?
ORDER BY joined_at, user_id
`, containerID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var membership domain.Membership
		var role string
		var joinedAt int64
		if err := rows.Scan(
			&membership.UserID,
			&membership.ContainerID,
			&role,
			&joinedAt,
		); err != nil {
			return nil, fmt.Errorf("scan membership row: %w", err)
		}
		membership.Role = domain.RoleFromLabel(role)
		membership.JoinedAt = fromMillis(joinedAt)
		memberships = append(memberships, membership)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate membership rows: %w", err)
	}
	return memberships, nil
}
