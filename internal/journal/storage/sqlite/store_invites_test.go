package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

func seedInvite(t *testing.T, store *Store, invite domain.Invite) {
	t.Helper()
	if err := store.PutInvite(context.Background(), invite); err != nil {
		t.Fatalf("seed invite %s: %v", invite.ID, err)
	}
}

func TestInviteRoundTrip(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedContainer(t, store, "container-1", "user-1", now)

	expiresAt := now.Add(48 * time.Hour)
	maxUses := 5
	seedInvite(t, store, domain.Invite{
		ID:              "invite-1",
		ContainerID:     "container-1",
		Code:            "ABCD2345",
		CreatedByUserID: "user-1",
		CreatedAt:       now,
		ExpiresAt:       &expiresAt,
		MaxUses:         &maxUses,
		Active:          true,
	})

	invite, err := store.GetInvite(context.Background(), "invite-1")
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if invite.ExpiresAt == nil || !invite.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, invite.ExpiresAt)
	}
	if invite.MaxUses == nil || *invite.MaxUses != 5 {
		t.Fatalf("expected max uses 5, got %v", invite.MaxUses)
	}
	if !invite.Active {
		t.Fatal("expected active invite")
	}

	byCode, err := store.GetInviteByCode(context.Background(), "ABCD2345")
	if err != nil {
		t.Fatalf("get invite by code: %v", err)
	}
	if byCode.ID != "invite-1" {
		t.Fatalf("expected invite-1, got %q", byCode.ID)
	}

	if _, err := store.GetInviteByCode(context.Background(), "WXYZ6789"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteContainerCascadesInvites(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedContainer(t, store, "container-1", "user-1", now)
	seedInvite(t, store, domain.Invite{
		ID:              "invite-1",
		ContainerID:     "container-1",
		Code:            "ABCD2345",
		CreatedByUserID: "user-1",
		CreatedAt:       now,
		Active:          true,
	})

	if err := store.DeleteContainer(context.Background(), "container-1"); err != nil {
		t.Fatalf("delete container: %v", err)
	}

	if _, err := store.GetInvite(context.Background(), "invite-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected invite cascade, got %v", err)
	}
	if _, err := store.GetMembership(context.Background(), "user-1", "container-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected membership cascade, got %v", err)
	}
	exists, err := store.CodeExists(context.Background(), "ABCD2345")
	if err != nil {
		t.Fatalf("code exists: %v", err)
	}
	if exists {
		t.Fatalf("expected cascaded invite code to be gone")
	}
}

func TestPutInviteDuplicateCode(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedContainer(t, store, "container-1", "user-1", now)

	seedInvite(t, store, domain.Invite{
		ID:              "invite-1",
		ContainerID:     "container-1",
		Code:            "ABCD2345",
		CreatedByUserID: "user-1",
		CreatedAt:       now,
		Active:          true,
	})

	err := store.PutInvite(context.Background(), domain.Invite{
		ID:              "invite-2",
		ContainerID:     "container-1",
		Code:            "ABCD2345",
		CreatedByUserID: "user-1",
		CreatedAt:       now,
		Active:          true,
	})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected conflict for duplicate code, got %v", err)
	}

	exists, err := store.CodeExists(context.Background(), "ABCD2345")
	if err != nil {
		t.Fatalf("code exists: %v", err)
	}
	if !exists {
		t.Fatal("expected code to exist")
	}
}

func TestDeactivateInviteIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedContainer(t, store, "container-1", "user-1", now)
	seedInvite(t, store, domain.Invite{
		ID:              "invite-1",
		ContainerID:     "container-1",
		Code:            "ABCD2345",
		CreatedByUserID: "user-1",
		CreatedAt:       now,
		Active:          true,
	})

	if err := store.DeactivateInvite(context.Background(), "invite-1"); err != nil {
		t.Fatalf("deactivate invite: %v", err)
	}
	if err := store.DeactivateInvite(context.Background(), "invite-1"); err != nil {
		t.Fatalf("second deactivate: %v", err)
	}

	invite, err := store.GetInvite(context.Background(), "invite-1")
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if invite.Active {
		t.Fatal("expected inactive invite")
	}

	if err := store.DeactivateInvite(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeactivateExpiredInvites(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedContainer(t, store, "container-1", "user-1", now)

	expired := now.Add(-time.Hour)
	live := now.Add(time.Hour)
	seedInvite(t, store, domain.Invite{
		ID: "invite-expired", ContainerID: "container-1", Code: "AAAA2345",
		CreatedByUserID: "user-1", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: &expired, Active: true,
	})
	seedInvite(t, store, domain.Invite{
		ID: "invite-live", ContainerID: "container-1", Code: "BBBB2345",
		CreatedByUserID: "user-1", CreatedAt: now, ExpiresAt: &live, Active: true,
	})
	seedInvite(t, store, domain.Invite{
		ID: "invite-open", ContainerID: "container-1", Code: "CCCC2345",
		CreatedByUserID: "user-1", CreatedAt: now, Active: true,
	})

	if err := store.DeactivateExpiredInvites(context.Background(), "container-1", now); err != nil {
		t.Fatalf("deactivate expired invites: %v", err)
	}

	invites, err := store.ListInvitesByContainer(context.Background(), "container-1")
	if err != nil {
		t.Fatalf("list invites: %v", err)
	}
	active := map[string]bool{}
	for _, invite := range invites {
		active[invite.ID] = invite.Active
	}
	if active["invite-expired"] {
		t.Fatal("expected expired invite to be deactivated")
	}
	if !active["invite-live"] || !active["invite-open"] {
		t.Fatal("expected unexpired invites to stay active")
	}
}

func TestJoinWithInvite(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedUser(t, store, "user-2", now)
	seedContainer(t, store, "container-1", "user-1", now)

	maxUses := 2
	seedInvite(t, store, domain.Invite{
		ID: "invite-1", ContainerID: "container-1", Code: "ABCD2345",
		CreatedByUserID: "user-1", CreatedAt: now, MaxUses: &maxUses, Active: true,
	})

	err := store.JoinWithInvite(context.Background(), "invite-1", domain.Membership{
		UserID:      "user-2",
		ContainerID: "container-1",
		Role:        domain.RoleMember,
		JoinedAt:    now,
	})
	if err != nil {
		t.Fatalf("join with invite: %v", err)
	}

	membership, err := store.GetMembership(context.Background(), "user-2", "container-1")
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if membership.Role != domain.RoleMember {
		t.Fatalf("expected member role, got %v", membership.Role)
	}

	invite, err := store.GetInvite(context.Background(), "invite-1")
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if invite.CurrentUses != 1 {
		t.Fatalf("expected 1 use, got %d", invite.CurrentUses)
	}
	if !invite.Active {
		t.Fatal("expected invite to stay active with remaining uses")
	}
}

func TestJoinWithInviteAlreadyMemberWritesNothing(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedContainer(t, store, "container-1", "user-1", now)
	seedInvite(t, store, domain.Invite{
		ID: "invite-1", ContainerID: "container-1", Code: "ABCD2345",
		CreatedByUserID: "user-1", CreatedAt: now, Active: true,
	})

	err := store.JoinWithInvite(context.Background(), "invite-1", domain.Membership{
		UserID:      "user-1",
		ContainerID: "container-1",
		Role:        domain.RoleMember,
		JoinedAt:    now,
	})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	invite, err := store.GetInvite(context.Background(), "invite-1")
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if invite.CurrentUses != 0 {
		t.Fatalf("expected use count untouched, got %d", invite.CurrentUses)
	}
}

func TestJoinWithInviteDeactivatesAtLimit(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedUser(t, store, "user-2", now)
	seedUser(t, store, "user-3", now)
	seedContainer(t, store, "container-1", "user-1", now)

	maxUses := 1
	seedInvite(t, store, domain.Invite{
		ID: "invite-1", ContainerID: "container-1", Code: "ABCD2345",
		CreatedByUserID: "user-1", CreatedAt: now, MaxUses: &maxUses, Active: true,
	})

	err := store.JoinWithInvite(context.Background(), "invite-1", domain.Membership{
		UserID: "user-2", ContainerID: "container-1", Role: domain.RoleMember, JoinedAt: now,
	})
	if err != nil {
		t.Fatalf("first join: %v", err)
	}

	invite, err := store.GetInvite(context.Background(), "invite-1")
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if invite.CurrentUses != 1 || invite.Active {
		t.Fatalf("expected exhausted inactive invite, got uses=%d active=%v", invite.CurrentUses, invite.Active)
	}

	err = store.JoinWithInvite(context.Background(), "invite-1", domain.Membership{
		UserID: "user-3", ContainerID: "container-1", Role: domain.RoleMember, JoinedAt: now,
	})
	if !errors.Is(err, storage.ErrInviteUnavailable) {
		t.Fatalf("expected invite unavailable, got %v", err)
	}
	if _, err := store.GetMembership(context.Background(), "user-3", "container-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected no membership for rejected join, got %v", err)
	}
}

func TestJoinWithInviteConcurrentLastUse(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	seedUser(t, store, "user-1", now)
	seedUser(t, store, "user-2", now)
	seedUser(t, store, "user-3", now)
	seedContainer(t, store, "container-1", "user-1", now)

	maxUses := 1
	seedInvite(t, store, domain.Invite{
		ID: "invite-1", ContainerID: "container-1", Code: "ABCD2345",
		CreatedByUserID: "user-1", CreatedAt: now, MaxUses: &maxUses, Active: true,
	})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, userID := range []string{"user-2", "user-3"} {
		wg.Add(1)
		go func(slot int, userID string) {
			defer wg.Done()
			results[slot] = store.JoinWithInvite(context.Background(), "invite-1", domain.Membership{
				UserID:      userID,
				ContainerID: "container-1",
				Role:        domain.RoleMember,
				JoinedAt:    now,
			})
		}(i, userID)
	}
	wg.Wait()

	var succeeded, unavailable int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, storage.ErrInviteUnavailable):
			unavailable++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}
	if succeeded != 1 || unavailable != 1 {
		t.Fatalf("expected exactly one success and one unavailable, got %d/%d", succeeded, unavailable)
	}

	invite, err := store.GetInvite(context.Background(), "invite-1")
	if err != nil {
		t.Fatalf("get invite: %v", err)
	}
	if invite.CurrentUses != 1 {
		t.Fatalf("expected exactly 1 use, got %d", invite.CurrentUses)
	}
	if invite.Active {
		t.Fatal("expected exhausted invite to be inactive")
	}

	members, err := store.ListMembers(context.Background(), "container-1")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected owner plus one joiner, got %d members", len(members))
	}
}
