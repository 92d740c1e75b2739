package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"
)

var (
	// ErrInvalidInviteTTL indicates a negative expiry window.
	ErrInvalidInviteTTL = apperrors.New(apperrors.CodeInviteTTLInvalid, "invite ttl hours must be non-negative")
	// ErrInvalidInviteMaxUses indicates a non-positive use limit.
	ErrInvalidInviteMaxUses = apperrors.New(apperrors.CodeInviteMaxUsesInvalid, "invite max uses must be at least 1")
	// ErrEmptyInviteCode indicates a missing invite code.
	ErrEmptyInviteCode = apperrors.New(apperrors.CodeInviteNotFound, "invite code is required")
)

// Invite represents a shareable join code for a container.
//
// ExpiresAt is nil when the invite never expires; MaxUses is nil when uses
// are unlimited. Active only ever transitions from true to false.
type Invite struct {
	ID              string
	ContainerID     string
	Code            string
	CreatedByUserID string
	CreatedAt       time.Time
	ExpiresAt       *time.Time
	MaxUses         *int
	CurrentUses     int
	Active          bool
}

// Expired reports whether the invite's expiry has elapsed at the given time.
// Invites without an expiry never expire.
func (i Invite) Expired(now time.Time) bool {
	if i.ExpiresAt == nil {
		return false
	}
	return !now.UTC().Before(i.ExpiresAt.UTC())
}

// Exhausted reports whether the invite's use limit has been reached.
// Invites without a limit are never exhausted.
func (i Invite) Exhausted() bool {
	if i.MaxUses == nil {
		return false
	}
	return i.CurrentUses >= *i.MaxUses
}

// JoinLink renders the shareable join URL for the invite code.
func (i Invite) JoinLink(baseURL string) string {
	return fmt.Sprintf("%s/invites/join?code=%s", strings.TrimRight(baseURL, "/"), i.Code)
}

// CreateInviteInput describes the metadata needed to create an invite.
type CreateInviteInput struct {
	ContainerID     string
	CreatedByUserID string
	// TTLHours bounds the invite lifetime in hours. Nil means never expires;
	// zero produces an invite that is already expired.
	TTLHours *int
	// MaxUses bounds the number of joins. Nil means unlimited.
	MaxUses *int
}

// CreateInvite creates an invite with a generated ID, the provided unique
// code, and timestamps. Code uniqueness is the caller's responsibility.
func CreateInvite(input CreateInviteInput, code string, now func() time.Time, idGenerator func() (string, error)) (Invite, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = NewID
	}

	normalized, err := NormalizeCreateInviteInput(input)
	if err != nil {
		return Invite{}, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Invite{}, ErrEmptyInviteCode
	}

	inviteID, err := idGenerator()
	if err != nil {
		return Invite{}, fmt.Errorf("generate invite id: %w", err)
	}

	createdAt := now().UTC()
	invite := Invite{
		ID:              inviteID,
		ContainerID:     normalized.ContainerID,
		Code:            code,
		CreatedByUserID: normalized.CreatedByUserID,
		CreatedAt:       createdAt,
		CurrentUses:     0,
		Active:          true,
	}
	if normalized.TTLHours != nil {
		expiresAt := createdAt.Add(time.Duration(*normalized.TTLHours) * time.Hour)
		invite.ExpiresAt = &expiresAt
	}
	if normalized.MaxUses != nil {
		maxUses := *normalized.MaxUses
		invite.MaxUses = &maxUses
	}
	return invite, nil
}

// NormalizeCreateInviteInput trims and validates invite input metadata.
func NormalizeCreateInviteInput(input CreateInviteInput) (CreateInviteInput, error) {
	input.ContainerID = strings.TrimSpace(input.ContainerID)
	if input.ContainerID == "" {
		return CreateInviteInput{}, ErrEmptyContainerID
	}
	input.CreatedByUserID = strings.TrimSpace(input.CreatedByUserID)
	if input.CreatedByUserID == "" {
		return CreateInviteInput{}, ErrEmptyUserID
	}
	if input.TTLHours != nil && *input.TTLHours < 0 {
		return CreateInviteInput{}, ErrInvalidInviteTTL
	}
	if input.MaxUses != nil && *input.MaxUses < 1 {
		return CreateInviteInput{}, ErrInvalidInviteMaxUses
	}
	return input, nil
}
