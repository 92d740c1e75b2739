package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/authz"
	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/filter"
)

// CreateSlip creates a journal entry in a container the actor belongs to.
func (s *Service) CreateSlip(ctx context.Context, actorUserID, containerID, title, content string) (domain.Slip, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return domain.Slip{}, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return domain.Slip{}, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionCreate) {
		return domain.Slip{}, forbidden("create a slip in", "container")
	}

	slip, err := domain.CreateSlip(domain.CreateSlipInput{
		ContainerID:  containerID,
		AuthorUserID: actorUserID,
		Title:        title,
		Content:      content,
	}, s.clock, s.idGenerator)
	if err != nil {
		return domain.Slip{}, err
	}
	if err := s.store.PutSlip(ctx, slip); err != nil {
		return domain.Slip{}, fmt.Errorf("persist slip: %w", err)
	}
	return slip, nil
}

// GetSlip fetches a slip in a container the actor belongs to.
func (s *Service) GetSlip(ctx context.Context, actorUserID, slipID string) (domain.Slip, error) {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return domain.Slip{}, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionView) {
		return domain.Slip{}, forbidden("view", "slip")
	}
	return slip, nil
}

// ListSlips returns a container's slips, newest first, optionally narrowed
// by an AIP-160 filter expression over author_id, title, and created_at.
func (s *Service) ListSlips(ctx context.Context, actorUserID, containerID, filterStr string) ([]domain.Slip, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionList) {
		return nil, forbidden("list slips in", "container")
	}

	cond, err := filter.ParseSlipFilter(filterStr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSlipFilterInvalid, "slip filter is invalid", err)
	}
	slips, err := s.store.ListSlips(ctx, containerID, cond)
	if err != nil {
		return nil, fmt.Errorf("list slips: %w", err)
	}
	return slips, nil
}

// UpdateSlip edits a slip's title and content. Author only.
func (s *Service) UpdateSlip(ctx context.Context, actorUserID, slipID, title, content string) (domain.Slip, error) {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return domain.Slip{}, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionUpdate) {
		return domain.Slip{}, forbidden("update", "slip")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Slip{}, domain.ErrEmptySlipContent
	}
	slip.Title = strings.TrimSpace(title)
	slip.Content = content
	slip.UpdatedAt = s.now()
	if err := s.store.PutSlip(ctx, slip); err != nil {
		return domain.Slip{}, fmt.Errorf("update slip: %w", err)
	}
	return slip, nil
}

// DeleteSlip removes a slip along with its comments, reactions, and media.
// Author or container admin. Stored media files are deleted from the object
// store first so rows never outlive a file we meant to drop.
func (s *Service) DeleteSlip(ctx context.Context, actorUserID, slipID string) error {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionDelete) {
		return forbidden("delete", "slip")
	}

	media, err := s.store.ListMediaBySlip(ctx, slip.ID)
	if err != nil {
		return fmt.Errorf("list slip media: %w", err)
	}
	for _, m := range media {
		if err := s.objects.Delete(ctx, m.FileKey); err != nil {
			return fmt.Errorf("delete media file: %w", err)
		}
	}

	if err := s.store.DeleteSlip(ctx, slip.ID); err != nil {
		return fmt.Errorf("delete slip: %w", err)
	}
	return nil
}

// slipActor resolves a slip and the actor's authorization view of it.
func (s *Service) slipActor(ctx context.Context, actorUserID, slipID string) (domain.Slip, authz.Actor, error) {
	slip, err := s.requireSlip(ctx, slipID)
	if err != nil {
		return domain.Slip{}, authz.Actor{}, err
	}
	container, err := s.requireContainer(ctx, slip.ContainerID)
	if err != nil {
		return domain.Slip{}, authz.Actor{}, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return domain.Slip{}, authz.Actor{}, err
	}
	actor.Author = slip.AuthorUserID == actorUserID
	return slip, actor, nil
}
