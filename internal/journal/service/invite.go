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

// codeAttempts bounds how many generated codes we try before giving up.
const codeAttempts = 5

// InviteLink pairs an invite with its shareable join URL.
type InviteLink struct {
	Invite domain.Invite
	URL    string
}

// CreateInvite mints a join code for a container. Admin only. TTLHours nil
// means the invite never expires; maxUses nil means unlimited joins.
func (s *Service) CreateInvite(ctx context.Context, actorUserID, containerID string, ttlHours, maxUses *int) (InviteLink, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return InviteLink{}, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return InviteLink{}, err
	}
	if !authz.Can(actor, authz.ResourceInvite, authz.ActionCreate) {
		return InviteLink{}, forbidden("create an invite for", "container")
	}

	input := domain.CreateInviteInput{
		ContainerID:     containerID,
		CreatedByUserID: actorUserID,
		TTLHours:        ttlHours,
		MaxUses:         maxUses,
	}
	if _, err := domain.NormalizeCreateInviteInput(input); err != nil {
		return InviteLink{}, err
	}

	// Codes collide rarely at this length, so retry the insert a few
	// times rather than reserving codes up front.
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := s.codeGenerator(domain.CodeLength)
		if err != nil {
			return InviteLink{}, fmt.Errorf("generate invite code: %w", err)
		}
		// Codes are never reissued, so the check covers inactive invites too.
		exists, err := s.store.CodeExists(ctx, code)
		if err != nil {
			return InviteLink{}, fmt.Errorf("check invite code: %w", err)
		}
		if exists {
			continue
		}
		invite, err := domain.CreateInvite(input, code, s.clock, s.idGenerator)
		if err != nil {
			return InviteLink{}, err
		}
		if err := s.store.PutInvite(ctx, invite); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				continue
			}
			return InviteLink{}, fmt.Errorf("persist invite: %w", err)
		}
		return InviteLink{Invite: invite, URL: invite.JoinLink(s.baseURL)}, nil
	}
	return InviteLink{}, apperrors.New(apperrors.CodeInviteCodeUnavailable, "could not allocate a unique invite code")
}

// ListActiveInvites returns a container's usable invites. Admin only.
// Expired invites are swept inactive on the way, so the listing reflects
// the clock without a background job.
func (s *Service) ListActiveInvites(ctx context.Context, actorUserID, containerID string) ([]InviteLink, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ResourceInvite, authz.ActionList) {
		return nil, forbidden("list invites for", "container")
	}

	if err := s.store.DeactivateExpiredInvites(ctx, containerID, s.now()); err != nil {
		return nil, fmt.Errorf("sweep expired invites: %w", err)
	}
	invites, err := s.store.ListInvitesByContainer(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}

	var links []InviteLink
	for _, invite := range invites {
		if !invite.Active {
			continue
		}
		links = append(links, InviteLink{Invite: invite, URL: invite.JoinLink(s.baseURL)})
	}
	return links, nil
}

// JoinByCode redeems an invite code for the actor, creating a member
// membership in the invite's container. Checks run in a fixed order so a
// dead code reports its most specific failure.
func (s *Service) JoinByCode(ctx context.Context, actorUserID, code string) (domain.Membership, error) {
	invite, err := s.store.GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Membership{}, apperrors.New(apperrors.CodeInviteNotFound, "invite was not found")
		}
		return domain.Membership{}, fmt.Errorf("get invite: %w", err)
	}

	// Exhaustion flips the active flag in the same commit that spends the
	// last use, so the exhausted check runs first to keep the report
	// specific.
	if invite.Exhausted() {
		return domain.Membership{}, apperrors.New(apperrors.CodeInviteExhausted, "invite has no uses left")
	}
	if !invite.Active {
		return domain.Membership{}, apperrors.New(apperrors.CodeInviteInactive, "invite is no longer active")
	}
	if invite.Expired(s.now()) {
		if err := s.store.DeactivateInvite(ctx, invite.ID); err != nil {
			return domain.Membership{}, fmt.Errorf("deactivate expired invite: %w", err)
		}
		return domain.Membership{}, apperrors.New(apperrors.CodeInviteExpired, "invite has expired")
	}

	if _, err := s.store.GetMembership(ctx, actorUserID, invite.ContainerID); err == nil {
		return domain.Membership{}, apperrors.New(apperrors.CodeMembershipExists, "user is already a member of this container")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.Membership{}, fmt.Errorf("get membership: %w", err)
	}

	membership, err := domain.CreateMembership(domain.CreateMembershipInput{
		UserID:      actorUserID,
		ContainerID: invite.ContainerID,
		Role:        domain.RoleMember,
	}, s.clock)
	if err != nil {
		return domain.Membership{}, err
	}

	if err := s.store.JoinWithInvite(ctx, invite.ID, membership); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			return domain.Membership{}, apperrors.New(apperrors.CodeMembershipExists, "user is already a member of this container")
		case errors.Is(err, storage.ErrInviteUnavailable):
			return domain.Membership{}, apperrors.New(apperrors.CodeInviteExhausted, "invite has no uses left")
		}
		return domain.Membership{}, fmt.Errorf("join with invite: %w", err)
	}
	return membership, nil
}

// DeactivateInvite turns an invite off. Container admins and the invite's
// creator may do this; repeating it is a no-op.
func (s *Service) DeactivateInvite(ctx context.Context, actorUserID, inviteID string) error {
	invite, err := s.store.GetInvite(ctx, inviteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeInviteNotFound, "invite was not found")
		}
		return fmt.Errorf("get invite: %w", err)
	}

	container, err := s.requireContainer(ctx, invite.ContainerID)
	if err != nil {
		return err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return err
	}
	actor.InviteCreator = invite.CreatedByUserID == actorUserID
	if !authz.Can(actor, authz.ResourceInvite, authz.ActionDeactivate) {
		return forbidden("deactivate", "invite")
	}

	if err := s.store.DeactivateInvite(ctx, invite.ID); err != nil {
		return fmt.Errorf("deactivate invite: %w", err)
	}
	return nil
}
