package domain

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

// ErrEmptyReactionType indicates a missing reaction label.
var ErrEmptyReactionType = apperrors.New(apperrors.CodeReactionTypeEmpty, "reaction type is required")

// Reaction represents a single labeled response by one user to one slip.
// A user has at most one reaction per slip.
type Reaction struct {
	SlipID       string
	UserID       string
	ReactionType string
	CreatedAt    time.Time
}

// CreateReactionInput describes the metadata needed to record a reaction.
type CreateReactionInput struct {
	SlipID       string
	UserID       string
	ReactionType string
}

// CreateReaction creates a reaction record with a created-at timestamp.
func CreateReaction(input CreateReactionInput, now func() time.Time) (Reaction, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreateReactionInput(input)
	if err != nil {
		return Reaction{}, err
	}

	return Reaction{
		SlipID:       normalized.SlipID,
		UserID:       normalized.UserID,
		ReactionType: normalized.ReactionType,
		CreatedAt:    now().UTC(),
	}, nil
}

// NormalizeCreateReactionInput trims and validates reaction input metadata.
func NormalizeCreateReactionInput(input CreateReactionInput) (CreateReactionInput, error) {
	input.SlipID = strings.TrimSpace(input.SlipID)
	if input.SlipID == "" {
		return CreateReactionInput{}, ErrEmptySlipID
	}
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return CreateReactionInput{}, ErrEmptyUserID
	}
	input.ReactionType = strings.TrimSpace(input.ReactionType)
	if input.ReactionType == "" {
		return CreateReactionInput{}, ErrEmptyReactionType
	}
	return input, nil
}
