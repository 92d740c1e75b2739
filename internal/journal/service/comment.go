package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/authz"
	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// CreateComment adds a comment to a slip in a container the actor belongs to.
func (s *Service) CreateComment(ctx context.Context, actorUserID, slipID, content string) (domain.Comment, error) {
	_, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !authz.Can(actor, authz.ResourceComment, authz.ActionCreate) {
		return domain.Comment{}, forbidden("comment on", "slip")
	}

	comment, err := domain.CreateComment(domain.CreateCommentInput{
		SlipID:       slipID,
		AuthorUserID: actorUserID,
		Content:      content,
	}, s.clock, s.idGenerator)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := s.store.PutComment(ctx, comment); err != nil {
		return domain.Comment{}, fmt.Errorf("persist comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a slip's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, actorUserID, slipID string) ([]domain.Comment, error) {
	_, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceComment, authz.ActionList) {
		return nil, forbidden("list comments on", "slip")
	}

	comments, err := s.store.ListCommentsBySlip(ctx, slipID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment edits a comment's content. Author only.
func (s *Service) UpdateComment(ctx context.Context, actorUserID, commentID, content string) (domain.Comment, error) {
	comment, actor, err := s.commentActor(ctx, actorUserID, commentID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !authz.Can(actor, authz.ResourceComment, authz.ActionUpdate) {
		return domain.Comment{}, forbidden("update", "comment")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyCommentContent
	}
	comment.Content = content
	comment.UpdatedAt = s.now()
	if err := s.store.PutComment(ctx, comment); err != nil {
		return domain.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Author or container admin.
func (s *Service) DeleteComment(ctx context.Context, actorUserID, commentID string) error {
	comment, actor, err := s.commentActor(ctx, actorUserID, commentID)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ResourceComment, authz.ActionDelete) {
		return forbidden("delete", "comment")
	}

	if err := s.store.DeleteComment(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// commentActor resolves a comment and the actor's authorization view of it.
func (s *Service) commentActor(ctx context.Context, actorUserID, commentID string) (domain.Comment, authz.Actor, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Comment{}, authz.Actor{}, apperrors.New(apperrors.CodeCommentNotFound, "comment was not found")
		}
		return domain.Comment{}, authz.Actor{}, fmt.Errorf("get comment: %w", err)
	}
	_, actor, err := s.slipActor(ctx, actorUserID, comment.SlipID)
	if err != nil {
		return domain.Comment{}, authz.Actor{}, err
	}
	actor.Author = comment.AuthorUserID == actorUserID
	return comment, actor, nil
}
