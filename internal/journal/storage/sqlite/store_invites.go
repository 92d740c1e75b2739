package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// PutInvite inserts an invite row. Codes are globally unique across every
// invite ever issued, active or not.
func (s *Store) PutInvite(ctx context.Context, invite domain.Invite) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(invite.ID) == "" {
		return fmt.Errorf("invite id is required")
	}
	if strings.TrimSpace(invite.ContainerID) == "" {
		return fmt.Errorf("container id is required")
	}
	if strings.TrimSpace(invite.Code) == "" {
		return fmt.Errorf("invite code is required")
	}

	var expiresAt sql.NullInt64
	if invite.ExpiresAt != nil {
		expiresAt = sql.NullInt64{Int64: toMillis(*invite.ExpiresAt), Valid: true}
	}
	var maxUses sql.NullInt64
	if invite.MaxUses != nil {
		maxUses = sql.NullInt64{Int64: int64(*invite.MaxUses), Valid: true}
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO invites (id, container_id, code, created_by_user_id, created_at, expires_at, max_uses, current_uses, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		invite.ID,
		invite.ContainerID,
		invite.Code,
		invite.CreatedByUserID,
		toMillis(invite.CreatedAt),
		expiresAt,
		maxUses,
		invite.CurrentUses,
		boolToInt(invite.Active),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put invite: %w", err)
	}
	return nil
}

// GetInvite fetches an invite record by ID.
func (s *Store) GetInvite(ctx context.Context, inviteID string) (domain.Invite, error) {
	if err := ctx.Err(); err != nil {
		return domain.Invite{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Invite{}, fmt.Errorf("storage is not configured")
	}
	inviteID = strings.TrimSpace(inviteID)
	if inviteID == "" {
		return domain.Invite{}, fmt.Errorf("invite id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, container_id, code, created_by_user_id, created_at, expires_at, max_uses, current_uses, is_active
FROM invites
WHERE id = ?
`, inviteID)
	return scanInvite(row)
}

// GetInviteByCode fetches an invite record by its join code.
func (s *Store) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	if err := ctx.Err(); err != nil {
		return domain.Invite{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Invite{}, fmt.Errorf("storage is not configured")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Invite{}, fmt.Errorf("invite code is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, container_id, code, created_by_user_id, created_at, expires_at, max_uses, current_uses, is_active
FROM invites
WHERE code = ?
`, code)
	return scanInvite(row)
}

// ListInvitesByContainer returns every invite of the container, newest
// first.
func (s *Store) ListInvitesByContainer(ctx context.Context, containerID string) ([]domain.Invite, error) {
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
SELECT id, container_id, code, created_by_user_id, created_at, expires_at, max_uses, current_uses, is_active
FROM invites
WHERE container_id = ?
ORDER BY created_at DESC, id
`, containerID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		invite, err := scanInviteRow(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invite rows: %w", err)
	}
	return invites, nil
}

// CodeExists reports whether any invite, active or not, holds the code.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return false, fmt.Errorf("invite code is required")
	}

	var count int
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM invites WHERE code = ?`, code)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("count invite codes: %w", err)
	}
	return count > 0, nil
}

// DeactivateInvite flips is_active to false. Already inactive invites are
// left untouched without error.
func (s *Store) DeactivateInvite(ctx context.Context, inviteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	inviteID = strings.TrimSpace(inviteID)
	if inviteID == "" {
		return fmt.Errorf("invite id is required")
	}

	var count int
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM invites WHERE id = ?`, inviteID)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("check invite: %w", err)
	}
	if count == 0 {
		return storage.ErrNotFound
	}

	if _, err := s.sqlDB.ExecContext(ctx, `
UPDATE invites SET is_active = 0 WHERE id = ?
`, inviteID); err != nil {
		return fmt.Errorf("deactivate invite: %w", err)
	}
	return nil
}

// DeactivateExpiredInvites flips every active invite of the container whose
// expiry elapsed before now.
func (s *Store) DeactivateExpiredInvites(ctx context.Context, containerID string, now time.Time) error {
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

	if _, err := s.sqlDB.ExecContext(ctx, `
UPDATE invites
SET is_active = 0
WHERE container_id = ? AND is_active = 1 AND expires_at IS NOT NULL AND expires_at <= ?
`, containerID, toMillis(now)); err != nil {
		return fmt.Errorf("deactivate expired invites: %w", err)
	}
	return nil
}

// JoinWithInvite commits the membership insert and the conditional use
// increment together. The increment only lands while the invite is still
// active with capacity left, so two racing joins on a single remaining use
// serialize into one success and one ErrInviteUnavailable.
func (s *Store) JoinWithInvite(ctx context.Context, inviteID string, membership domain.Membership) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	inviteID = strings.TrimSpace(inviteID)
	if inviteID == "" {
		return fmt.Errorf("invite id is required")
	}
	if strings.TrimSpace(membership.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(membership.ContainerID) == "" {
		return fmt.Errorf("container id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO memberships (user_id, container_id, role, joined_at)
VALUES (?, ?, ?, ?)
`,
		membership.UserID,
		membership.ContainerID,
		domain.RoleLabel(membership.Role),
		toMillis(membership.JoinedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("insert membership: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
UPDATE invites
SET current_uses = current_uses + 1,
	is_active = CASE
		WHEN max_uses IS NOT NULL AND current_uses + 1 >= max_uses THEN 0
		ELSE is_active
	END
WHERE id = ? AND is_active = 1 AND (max_uses IS NULL OR current_uses < max_uses)
`, inviteID)
	if err != nil {
		return fmt.Errorf("increment invite uses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment invite rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrInviteUnavailable
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit join: %w", err)
	}
	return nil
}

type inviteScanner interface {
	Scan(dest ...any) error
}

func scanInvite(row *sql.Row) (domain.Invite, error) {
	invite, err := scanInviteRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invite{}, storage.ErrNotFound
		}
		return domain.Invite{}, err
	}
	return invite, nil
}

func scanInviteRow(scanner inviteScanner) (domain.Invite, error) {
	var invite domain.Invite
	var createdAt int64
	var expiresAt sql.NullInt64
	var maxUses sql.NullInt64
	var active int
	if err := scanner.Scan(
		&invite.ID,
		&invite.ContainerID,
		&invite.Code,
		&invite.CreatedByUserID,
		&createdAt,
		&expiresAt,
		&maxUses,
		&invite.CurrentUses,
		&active,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invite{}, err
		}
		return domain.Invite{}, fmt.Errorf("scan invite row: %w", err)
	}
	invite.CreatedAt = fromMillis(createdAt)
	if expiresAt.Valid {
		value := fromMillis(expiresAt.Int64)
		invite.ExpiresAt = &value
	}
	if maxUses.Valid {
		value := int(maxUses.Int64)
		invite.MaxUses = &value
	}
	invite.Active = active != 0
	return invite, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
