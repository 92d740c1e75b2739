package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

var (
	// ErrEmptySlipContent indicates a missing slip body.
	ErrEmptySlipContent = apperrors.New(apperrors.CodeSlipContentEmpty, "slip content is required")
	// ErrEmptySlipID indicates a missing slip ID.
	ErrEmptySlipID = apperrors.New(apperrors.CodeSlipNotFound, "slip id is required")
)

// Slip represents a journal entry belonging to a container.
type Slip struct {
	ID           string
	ContainerID  string
	AuthorUserID string
	Title        string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateSlipInput describes the metadata needed to create a slip.
type CreateSlipInput struct {
	ContainerID  string
	AuthorUserID string
	Title        string
	Content      string
}

// CreateSlip creates a new slip with a generated ID and timestamps.
func CreateSlip(input CreateSlipInput, now func() time.Time, idGenerator func() (string, error)) (Slip, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	normalized, err := NormalizeCreateSlipInput(input)
	if err != nil {
		return Slip{}, err
	}

	slipID, err := idGenerator()
	if err != nil {
		return Slip{}, fmt.Errorf("generate slip id: %w", err)
	}

	createdAt := now().UTC()
	return Slip{
		ID:           slipID,
		ContainerID:  normalized.ContainerID,
		AuthorUserID: normalized.AuthorUserID,
		Title:        normalized.Title,
		Content:      normalized.Content,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateSlipInput trims and validates slip input metadata.
func NormalizeCreateSlipInput(input CreateSlipInput) (CreateSlipInput, error) {
	input.ContainerID = strings.TrimSpace(input.ContainerID)
	if input.ContainerID == "" {
		return CreateSlipInput{}, ErrEmptyContainerID
	}
	input.AuthorUserID = strings.TrimSpace(input.AuthorUserID)
	if input.AuthorUserID == "" {
		return CreateSlipInput{}, ErrEmptyUserID
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		return CreateSlipInput{}, ErrEmptySlipContent
	}
	return input, nil
}
