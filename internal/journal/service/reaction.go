package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/authz"
	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// ToggleOutcome describes what a reaction toggle did.
type ToggleOutcome int

const (
	// ToggleOutcomeUnspecified represents an invalid outcome value.
	ToggleOutcomeUnspecified ToggleOutcome = iota
	// ToggleAdded means the reaction was recorded fresh.
	ToggleAdded
	// ToggleRemoved means the same reaction existed and was cleared.
	ToggleRemoved
	// ToggleReplaced means a different reaction existed and was overwritten.
	ToggleReplaced
)

// ToggleReaction applies one reaction press. Pressing a new type records
// it, pressing the current type clears it, and pressing a different type
// replaces it, so repeated presses always land in a sensible state.
func (s *Service) ToggleReaction(ctx context.Context, actorUserID, slipID, reactionType string) (ToggleOutcome, error) {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return ToggleOutcomeUnspecified, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionView) {
		return ToggleOutcomeUnspecified, forbidden("react to", "slip")
	}

	reaction, err := domain.CreateReaction(domain.CreateReactionInput{
		SlipID:       slip.ID,
		UserID:       actorUserID,
		ReactionType: reactionType,
	}, s.clock)
	if err != nil {
		return ToggleOutcomeUnspecified, err
	}

	existing, err := s.store.GetReaction(ctx, slip.ID, actorUserID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if err := s.store.UpsertReaction(ctx, reaction); err != nil {
			return ToggleOutcomeUnspecified, fmt.Errorf("record reaction: %w", err)
		}
		return ToggleAdded, nil
	case err != nil:
		return ToggleOutcomeUnspecified, fmt.Errorf("get reaction: %w", err)
	}

	if existing.ReactionType == reaction.ReactionType {
		if err := s.store.DeleteReaction(ctx, slip.ID, actorUserID); err != nil {
			return ToggleOutcomeUnspecified, fmt.Errorf("clear reaction: %w", err)
		}
		return ToggleRemoved, nil
	}
	if err := s.store.UpsertReaction(ctx, reaction); err != nil {
		return ToggleOutcomeUnspecified, fmt.Errorf("replace reaction: %w", err)
	}
	return ToggleReplaced, nil
}

// RemoveReaction clears the actor's reaction on a slip.
func (s *Service) RemoveReaction(ctx context.Context, actorUserID, slipID string) error {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionView) {
		return forbidden("react to", "slip")
	}

	if err := s.store.DeleteReaction(ctx, slip.ID, actorUserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeReactionNotFound, "reaction was not found")
		}
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}

// ListSlipReactions returns every reaction on a slip.
func (s *Service) ListSlipReactions(ctx context.Context, actorUserID, slipID string) ([]domain.Reaction, error) {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionView) {
		return nil, forbidden("view", "slip")
	}

	reactions, err := s.store.ListReactionsBySlip(ctx, slip.ID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return reactions, nil
}

// ReactionSummary returns reaction counts on a slip keyed by type.
func (s *Service) ReactionSummary(ctx context.Context, actorUserID, slipID string) (map[string]int, error) {
	slip, actor, err := s.slipActor(ctx, actorUserID, slipID)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceSlip, authz.ActionView) {
		return nil, forbidden("view", "slip")
	}

	counts, err := s.store.CountReactionsBySlip(ctx, slip.ID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	return counts, nil
}
