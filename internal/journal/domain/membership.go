package domain

import (
	"strings"
	"time"
)

// Membership represents a user's participation in a container.
// A user has at most one membership per container.
type Membership struct {
	UserID      string
	ContainerID string
	Role        Role
	JoinedAt    time.Time
}

// CreateMembershipInput describes the metadata needed to create a membership.
type CreateMembershipInput struct {
	UserID      string
	ContainerID string
	Role        Role
}

// CreateMembership creates a membership record with a joined-at timestamp.
// The role defaults to Member when unspecified.
func CreateMembership(input CreateMembershipInput, now func() time.Time) (Membership, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreateMembershipInput(input)
	if err != nil {
		return Membership{}, err
	}

	return Membership{
		UserID:      normalized.UserID,
		ContainerID: normalized.ContainerID,
		Role:        normalized.Role,
		JoinedAt:    now().UTC(),
	}, nil
}

// NormalizeCreateMembershipInput trims and validates membership input metadata.
func NormalizeCreateMembershipInput(input CreateMembershipInput) (CreateMembershipInput, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return CreateMembershipInput{}, ErrEmptyUserID
	}
	input.ContainerID = strings.TrimSpace(input.ContainerID)
	if input.ContainerID == "" {
		return CreateMembershipInput{}, ErrEmptyContainerID
	}
	if input.Role == RoleUnspecified {
		input.Role = RoleMember
	}
	if input.Role != RoleAdmin && input.Role != RoleMember {
		return CreateMembershipInput{}, ErrInvalidRole
	}
	return input, nil
}
