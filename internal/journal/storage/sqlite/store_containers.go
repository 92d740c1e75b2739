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

// CreateContainer inserts the container and the owner's admin membership in
// one transaction.
func (s *Store) CreateContainer(ctx context.Context, container domain.Container, owner domain.Membership) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(container.ID) == "" {
		return fmt.Errorf("container id is required")
	}
	if strings.TrimSpace(container.OwnerUserID) == "" {
		return fmt.Errorf("owner user id is required")
	}
	if owner.UserID != container.OwnerUserID || owner.ContainerID != container.ID {
		return fmt.Errorf("owner membership must reference the container owner")
	}
	if owner.Role != domain.RoleAdmin {
		return fmt.Errorf("owner membership must be admin")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO containers (id, owner_user_id, name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`,
		container.ID,
		container.OwnerUserID,
		container.Name,
		toMillis(container.CreatedAt),
		toMillis(container.UpdatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("insert container: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO memberships (user_id, container_id, role, joined_at)
VALUES (?, ?, ?, ?)
`,
		owner.UserID,
		owner.ContainerID,
		domain.RoleLabel(owner.Role),
		toMillis(owner.JoinedAt),
	); err != nil {
		return fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit container: %w", err)
	}
	return nil
}

// GetContainer fetches a container record by ID.
func (s *Store) GetContainer(ctx context.Context, containerID string) (domain.Container, error) {
	if err := ctx.Err(); err != nil {
		return domain.Container{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Container{}, fmt.Errorf("storage is not configured")
	}
	containerID = strings.TrimSpace(containerID)
	if containerID == "" {
		return domain.Container{}, fmt.Errorf("container id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, owner_user_id, name, created_at, updated_at
FROM containers
WHERE id = ?
`, containerID)

	var container domain.Container
	var createdAt int64
	var updatedAt int64
	if err := row.Scan(
		&container.ID,
		&container.OwnerUserID,
		&container.Name,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Container{}, storage.ErrNotFound
		}
		return domain.Container{}, fmt.Errorf("get container: %w", err)
	}
	container.CreatedAt = fromMillis(createdAt)
	container.UpdatedAt = fromMillis(updatedAt)
	return container, nil
}

// ListContainersByUser returns every container the user belongs to, newest
// first.
func (s *Store) ListContainersByUser(ctx context.Context, userID string) ([]domain.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT c.id, c.owner_user_id, c.name, c.created_at, c.updated_at
FROM containers c
JOIN memberships m ON m.container_id = c.id
WHERE m.user_id = ?
ORDER BY c.created_at DESC, c.id
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()

	var containers []domain.Container
	for rows.Next() {
		var container domain.Container
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&container.ID,
			&container.OwnerUserID,
			&container.Name,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan container row: %w", err)
		}
		container.CreatedAt = fromMillis(createdAt)
		container.UpdatedAt = fromMillis(updatedAt)
		containers = append(containers, container)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate container rows: %w", err)
	}
	return containers, nil
}

// UpdateContainer updates the container's mutable fields.
func (s *Store) UpdateContainer(ctx context.Context, container domain.Container) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(container.ID) == "" {
		return fmt.Errorf("container id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE containers
SET name = ?, updated_at = ?
WHERE id = ?
`,
		container.Name,
		toMillis(container.UpdatedAt),
		container.ID,
	)
	if err != nil {
		return fmt.Errorf("update container: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update container rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteContainer removes the container. Memberships, invites, slips, and
// their dependents cascade through foreign keys.
func (s *Store) DeleteContainer(ctx context.Context, containerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	containerID = strings.TrimSpace(containerID)
	if containerID == "" {
		return fmt.Errorf("container id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM containers WHERE id = ?`, containerID)
	if err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete container rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
