package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/authz"
	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/objectstore"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// RequestMediaUpload issues a presigned upload slot for a file to attach to
// a slip. The caller uploads the bytes out of band, then registers the
// returned key with AttachMedia.
func (s *Service) RequestMediaUpload(ctx context.Context, actorUserID, slipID string, kind domain.MediaKind, contentType string) (objectstore.Upload, error) {
	_, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return objectstore.Upload{}, err
	}
	if !authz.Can(actor, authz.ResourceMedia, authz.ActionCreate) {
		return objectstore.Upload{}, forbidden("attach media to", "slip")
	}
	if kind != domain.MediaKindImage && kind != domain.MediaKindAudio {
		return objectstore.Upload{}, domain.ErrInvalidMediaKind
	}

	upload, err := s.objects.RequestUploadURL(ctx, kind, contentType)
	if err != nil {
		return objectstore.Upload{}, fmt.Errorf("request upload url: %w", err)
	}
	return upload, nil
}

// AttachMedia records an uploaded file against a slip. The file must already
// exist in the object store under the given key.
func (s *Service) AttachMedia(ctx context.Context, actorUserID, slipID string, kind domain.MediaKind, fileKey, caption string) (domain.Media, error) {
	_, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return domain.Media{}, err
	}
	if !authz.Can(actor, authz.ResourceMedia, authz.ActionCreate) {
		return domain.Media{}, forbidden("attach media to", "slip")
	}

	media, err := domain.CreateMedia(domain.CreateMediaInput{
		SlipID:  slipID,
		Kind:    kind,
		FileKey: fileKey,
		Caption: caption,
	}, s.clock, s.idGenerator)
	if err != nil {
		return domain.Media{}, err
	}

	exists, err := s.objects.Exists(ctx, media.FileKey)
	if err != nil {
		return domain.Media{}, fmt.Errorf("check media file: %w", err)
	}
	if !exists {
		return domain.Media{}, apperrors.New(apperrors.CodeMediaFileMissing, "uploaded file was not found in storage")
	}

	if err := s.store.PutMedia(ctx, media); err != nil {
		return domain.Media{}, fmt.Errorf("persist media: %w", err)
	}
	return media, nil
}

// ListSlipMedia returns a slip's media records.
func (s *Service) ListSlipMedia(ctx context.Context, actorUserID, slipID string) ([]domain.Media, error) {
	_, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceMedia, authz.ActionList) {
		return nil, forbidden("list media on", "slip")
	}

	media, err := s.store.ListMediaBySlip(ctx, slipID)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return media, nil
}

// MediaDownloadURL issues a presigned read URL for a media file.
func (s *Service) MediaDownloadURL(ctx context.Context, actorUserID, mediaID string) (string, error) {
	media, actor, err := s.mediaActor(ctx, actorUserID, mediaID)
	if err != nil {
		return "", err
	}
	if !authz.Can(actor, authz.ResourceMedia, authz.ActionView) {
		return "", forbidden("view", "media")
	}

	url, err := s.objects.RequestDownloadURL(ctx, media.FileKey)
	if err != nil {
		return "", fmt.Errorf("request download url: %w", err)
	}
	return url, nil
}

// UpdateMediaCaption edits a media record's caption. Owning slip's author
// only.
func (s *Service) UpdateMediaCaption(ctx context.Context, actorUserID, mediaID, caption string) (domain.Media, error) {
	media, actor, err := s.mediaActor(ctx, actorUserID, mediaID)
	if err != nil {
		return domain.Media{}, err
	}
	if !authz.Can(actor, authz.ResourceMedia, authz.ActionUpdate) {
		return domain.Media{}, forbidden("update", "media")
	}

	media.Caption = strings.TrimSpace(caption)
	if err := s.store.PutMedia(ctx, media); err != nil {
		return domain.Media{}, fmt.Errorf("update media: %w", err)
	}
	return media, nil
}

// DeleteMedia removes a media record and its stored file. Owning slip's
// author or container admin.
func (s *Service) DeleteMedia(ctx context.Context, actorUserID, mediaID string) error {
	media, actor, err := s.mediaActor(ctx, actorUserID, mediaID)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ResourceMedia, authz.ActionDelete) {
		return forbidden("delete", "media")
	}

	if err := s.objects.Delete(ctx, media.FileKey); err != nil {
		return fmt.Errorf("delete media file: %w", err)
	}
	if err := s.store.DeleteMedia(ctx, media.ID); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}

// mediaActor resolves a media record and the actor's authorization view of
// it. Authorship follows the owning slip.
func (s *Service) mediaActor(ctx context.Context, actorUserID, mediaID string) (domain.Media, authz.Actor, error) {
	media, err := s.store.GetMedia(ctx, mediaID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Media{}, authz.Actor{}, apperrors.New(apperrors.CodeMediaNotFound, "media was not found")
		}
		return domain.Media{}, authz.Actor{}, fmt.Errorf("get media: %w", err)
	}
	_, actor, err := s.slipActor(ctx, actorUserID, media.SlipID)
	if err != nil {
		return domain.Media{}, authz.Actor{}, err
	}
	return media, actor, nil
}
