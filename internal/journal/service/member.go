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

// IsMember reports whether the user belongs to the container.
func (s *Service) IsMember(ctx context.Context, userID, containerID string) (bool, error) {
	role, err := s.membershipRole(ctx, userID, containerID)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin || role == domain.RoleMember, nil
}

// IsAdmin reports whether the user administers the container.
func (s *Service) IsAdmin(ctx context.Context, userID, containerID string) (bool, error) {
	role, err := s.membershipRole(ctx, userID, containerID)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

// AddMember adds a user to a container with the given role. Admin only.
func (s *Service) AddMember(ctx context.Context, actorUserID, containerID, userID string, role domain.Role) (domain.Membership, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return domain.Membership{}, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return domain.Membership{}, err
	}
	if !authz.Can(actor, authz.ResourceContainer, authz.ActionAddMember) {
		return domain.Membership{}, forbidden("add a member to", "container")
	}

	membership, err := domain.CreateMembership(domain.CreateMembershipInput{
		UserID:      userID,
		ContainerID: containerID,
		Role:        role,
	}, s.clock)
	if err != nil {
		return domain.Membership{}, err
	}

	if err := s.store.PutMembership(ctx, membership); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return domain.Membership{}, apperrors.New(apperrors.CodeMembershipExists, "user is already a member of this container")
		}
		return domain.Membership{}, fmt.Errorf("persist membership: %w", err)
	}
	return membership, nil
}

// RemoveMember removes a user from a container. Admins remove anyone;
// members remove only themselves.
func (s *Service) RemoveMember(ctx context.Context, actorUserID, containerID, userID string) error {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return err
	}
	actor.Self = actorUserID == userID
	if !authz.Can(actor, authz.ResourceContainer, authz.ActionRemoveMember) {
		return forbidden("remove a member from", "container")
	}

	if err := s.store.DeleteMembership(ctx, userID, containerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeMembershipNotFound, "membership was not found")
		}
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// ListMembers returns the memberships of a container the actor belongs to.
func (s *Service) ListMembers(ctx context.Context, actorUserID, containerID string) ([]domain.Membership, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceContainer, authz.ActionView) {
		return nil, forbidden("view", "container")
	}

	members, err := s.store.ListMembers(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
