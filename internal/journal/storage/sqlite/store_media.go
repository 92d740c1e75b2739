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

// PutMedia persists a media record.
func (s *Store) PutMedia(ctx context.Context, media domain.Media) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(media.ID) == "" {
		return fmt.Errorf("media id is required")
	}
	if strings.TrimSpace(media.SlipID) == "" {
		return fmt.Errorf("slip id is required")
	}
	kind := domain.MediaKindLabel(media.Kind)
	if kind == "" {
		return fmt.Errorf("media kind is required")
	}
	if strings.TrimSpace(media.FileKey) == "" {
		return fmt.Errorf("file key is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO media (id, slip_id, kind, file_key, caption, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	caption = excluded.caption
`,
		media.ID,
		media.SlipID,
		kind,
		media.FileKey,
		media.Caption,
		toMillis(media.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put media: %w", err)
	}
	return nil
}

// GetMedia fetches a media record by ID.
func (s *Store) GetMedia(ctx context.Context, mediaID string) (domain.Media, error) {
	if err := ctx.Err(); err != nil {
		return domain.Media{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Media{}, fmt.Errorf("storage is not configured")
	}
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return domain.Media{}, fmt.Errorf("media id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, slip_id, kind, file_key, caption, created_at
FROM media
WHERE id = ?
`, mediaID)

	var media domain.Media
	var kind string
	var createdAt int64
	if err := row.Scan(
		&media.ID,
		&media.SlipID,
		&kind,
		&media.FileKey,
		&media.Caption,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Media{}, storage.ErrNotFound
		}
		return domain.Media{}, fmt.Errorf("get media: %w", err)
	}
	media.Kind = domain.MediaKindFromLabel(kind)
	media.CreatedAt = fromMillis(createdAt)
	return media, nil
}

// ListMediaBySlip returns the slip's media records oldest first.
func (s *Store) ListMediaBySlip(ctx context.Context, slipID string) ([]domain.Media, error) {
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
SELECT id, slip_id, kind, file_key, caption, created_at
FROM media
WHERE slip_id = ?
ORDER BY created_at, id
`, slipID)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var records []domain.Media
	for rows.Next() {
		var media domain.Media
		var kind string
		var createdAt int64
		if err := rows.Scan(
			&media.ID,
			&media.SlipID,
			&kind,
			&media.FileKey,
			&media.Caption,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		media.Kind = domain.MediaKindFromLabel(kind)
		media.CreatedAt = fromMillis(createdAt)
		records = append(records, media)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media rows: %w", err)
	}
	return records, nil
}

// DeleteMedia removes a media record.
func (s *Store) DeleteMedia(ctx context.Context, mediaID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return fmt.Errorf("media id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, mediaID)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete media rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
