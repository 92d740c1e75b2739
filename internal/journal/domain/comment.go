package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

// ErrEmptyCommentContent indicates a missing comment body.
var ErrEmptyCommentContent = apperrors.New(apperrors.CodeCommentContentEmpty, "comment content is required")

// Comment represents a member's response on a slip.
type Comment struct {
	ID           string
	SlipID       string
	AuthorUserID string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateCommentInput describes the metadata needed to create a comment.
type CreateCommentInput struct {
	SlipID       string
	AuthorUserID string
	Content      string
}

// CreateComment creates a new comment with a generated ID and timestamps.
func CreateComment(input CreateCommentInput, now func() time.Time, idGenerator func() (string, error)) (Comment, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	normalized, err := NormalizeCreateCommentInput(input)
	if err != nil {
		return Comment{}, err
	}

	commentID, err := idGenerator()
	if err != nil {
		return Comment{}, fmt.Errorf("generate comment id: %w", err)
	}

	createdAt := now().UTC()
	return Comment{
		ID:           commentID,
		SlipID:       normalized.SlipID,
		AuthorUserID: normalized.AuthorUserID,
		Content:      normalized.Content,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateCommentInput trims and validates comment input metadata.
func NormalizeCreateCommentInput(input CreateCommentInput) (CreateCommentInput, error) {
	input.SlipID = strings.TrimSpace(input.SlipID)
	if input.SlipID == "" {
		return CreateCommentInput{}, ErrEmptySlipID
	}
	input.AuthorUserID = strings.TrimSpace(input.AuthorUserID)
	if input.AuthorUserID == "" {
		return CreateCommentInput{}, ErrEmptyUserID
	}
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		return CreateCommentInput{}, ErrEmptyCommentContent
	}
	return input, nil
}
