// Package domain provides the core types for containers, memberships,
// invites, slips, and reactions.
package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

var (
	// ErrEmptyContainerName indicates a missing container name.
	ErrEmptyContainerName = apperrors.New(apperrors.CodeContainerNameEmpty, "container name is required")
	// ErrEmptyContainerID indicates a missing container ID.
	ErrEmptyContainerID = apperrors.New(apperrors.CodeContainerNotFound, "container id is required")
	// ErrEmptyUserID indicates a missing user ID.
	ErrEmptyUserID = apperrors.New(apperrors.CodeUserNotFound, "user id is required")
)

// Container represents a shared journal group owned by a user.
// The owner is set once at creation and never reassigned.
type Container struct {
	ID          string
	OwnerUserID string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateContainerInput describes the metadata needed to create a container.
type CreateContainerInput struct {
	OwnerUserID string
	Name        string
}

// CreateContainer creates a new container with a generated ID and timestamps.
func CreateContainer(input CreateContainerInput, now func() time.Time, idGenerator func() (string, error)) (Container, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	normalized, err := NormalizeCreateContainerInput(input)
	if err != nil {
		return Container{}, err
	}

	containerID, err := idGenerator()
	if err != nil {
		return Container{}, fmt.Errorf("generate container id: %w", err)
	}

	createdAt := now().UTC()
	return Container{
		ID:          containerID,
		OwnerUserID: normalized.OwnerUserID,
		Name:        normalized.Name,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreateContainerInput trims and validates container input metadata.
func NormalizeCreateContainerInput(input CreateContainerInput) (CreateContainerInput, error) {
	input.OwnerUserID = strings.TrimSpace(input.OwnerUserID)
	if input.OwnerUserID == "" {
		return CreateContainerInput{}, ErrEmptyUserID
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateContainerInput{}, ErrEmptyContainerName
	}
	return input, nil
}
