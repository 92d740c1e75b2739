// Package storage defines persistence contracts for journal state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/filter"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a uniqueness-constrained record already exists.
var ErrConflict = errors.New("record already exists")

// ErrInviteUnavailable indicates an invite lost its remaining capacity
// between the caller's read and the join commit.
var ErrInviteUnavailable = errors.New("invite has no remaining uses")

// UserStore persists provisioned user accounts.
type UserStore interface {
	PutUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	GetUserBySubject(ctx context.Context, subjectID string) (domain.User, error)
}

// ContainerStore persists containers and their cascading ownership.
type ContainerStore interface {
	// CreateContainer inserts the container and the owner's admin membership
	// in one transaction. A container never exists with zero memberships.
	CreateContainer(ctx context.Context, container domain.Container, owner domain.Membership) error
	GetContainer(ctx context.Context, containerID string) (domain.Container, error)
	ListContainersByUser(ctx context.Context, userID string) ([]domain.Container, error)
	UpdateContainer(ctx context.Context, container domain.Container) error
	// DeleteContainer removes the container; memberships and invites cascade.
	DeleteContainer(ctx context.Context, containerID string) error
}

// MembershipStore persists the user to container relation.
type MembershipStore interface {
	// PutMembership inserts a membership, returning ErrConflict when the
	// user already belongs to the container.
	PutMembership(ctx context.Context, membership domain.Membership) error
	GetMembership(ctx context.Context, userID, containerID string) (domain.Membership, error)
	DeleteMembership(ctx context.Context, userID, containerID string) error
	ListMembers(ctx context.Context, containerID string) ([]domain.Membership, error)
}

// InviteStore persists invites and performs the atomic join.
type InviteStore interface {
	// PutInvite inserts an invite, returning ErrConflict when the code is
	// already taken by any invite, active or not.
	PutInvite(ctx context.Context, invite domain.Invite) error
	GetInvite(ctx context.Context, inviteID string) (domain.Invite, error)
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)
	ListInvitesByContainer(ctx context.Context, containerID string) ([]domain.Invite, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// DeactivateInvite flips is_active to false. Deactivating an already
	// inactive invite is not an error.
	DeactivateInvite(ctx context.Context, inviteID string) error
	// DeactivateExpiredInvites flips every active invite of the container
	// whose expiry elapsed before now.
	DeactivateExpiredInvites(ctx context.Context, containerID string, now time.Time) error
	// JoinWithInvite commits the membership insert and the conditional use
	// increment together. It returns ErrConflict when the user is already a
	// member and ErrInviteUnavailable when the invite has no capacity left;
	// in both cases nothing is written.
	JoinWithInvite(ctx context.Context, inviteID string, membership domain.Membership) error
}

// SlipStore persists journal entries.
type SlipStore interface {
	PutSlip(ctx context.Context, slip domain.Slip) error
	GetSlip(ctx context.Context, slipID string) (domain.Slip, error)
	// ListSlips returns the container's slips newest first, optionally
	// narrowed by a translated filter condition.
	ListSlips(ctx context.Context, containerID string, cond filter.SQLCondition) ([]domain.Slip, error)
	DeleteSlip(ctx context.Context, slipID string) error
}

// CommentStore persists slip comments.
type CommentStore interface {
	PutComment(ctx context.Context, comment domain.Comment) error
	GetComment(ctx context.Context, commentID string) (domain.Comment, error)
	ListCommentsBySlip(ctx context.Context, slipID string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// MediaStore persists media attachment records. File bytes live in the
// external object store.
type MediaStore interface {
	PutMedia(ctx context.Context, media domain.Media) error
	GetMedia(ctx context.Context, mediaID string) (domain.Media, error)
	ListMediaBySlip(ctx context.Context, slipID string) ([]domain.Media, error)
	DeleteMedia(ctx context.Context, mediaID string) error
}

// ReactionStore persists the at-most-one reaction per user per slip.
type ReactionStore interface {
	// UpsertReaction inserts the reaction or replaces the type when the
	// (slip, user) pair already has one.
	UpsertReaction(ctx context.Context, reaction domain.Reaction) error
	GetReaction(ctx context.Context, slipID, userID string) (domain.Reaction, error)
	DeleteReaction(ctx context.Context, slipID, userID string) error
	ListReactionsBySlip(ctx context.Context, slipID string) ([]domain.Reaction, error)
	// CountReactionsBySlip returns reaction totals per type label.
	CountReactionsBySlip(ctx context.Context, slipID string) (map[string]int, error)
}

// Store aggregates every journal persistence contract.
type Store interface {
	UserStore
	ContainerStore
	MembershipStore
	InviteStore
	SlipStore
	CommentStore
	MediaStore
	ReactionStore
	Close() error
}
