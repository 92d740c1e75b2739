package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/identity"
	"github.com/louisbranch/slipjar/internal/journal/objectstore"
	"github.com/louisbranch/slipjar/internal/journal/storage/sqlite"
)

// newTestService wires a Service against a throwaway sqlite file and an
// in-process object store. The returned time pointer is the clock; tests
// advance it by assignment.
func newTestService(t *testing.T) (*Service, *time.Time, *objectstore.Memory) {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	objects := objectstore.NewMemory("https://files.example.test")
	svc := New(store, objects, "https://slipjar.example.test")
	svc.clock = func() time.Time { return now }
	return svc, &now, objects
}

func seedUser(t *testing.T, svc *Service, subject string) domain.User {
	t.Helper()
	user, err := svc.EnsureUser(context.Background(), identity.Identity{
		SubjectID: subject,
		Email:     subject + "@example.test",
	}, "User "+subject)
	if err != nil {
		t.Fatalf("ensure user %s: %v", subject, err)
	}
	return user
}

func seedContainer(t *testing.T, svc *Service, ownerID, name string) domain.Container {
	t.Helper()
	container, err := svc.CreateContainer(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("create container %s: %v", name, err)
	}
	return container
}

func seedSlip(t *testing.T, svc *Service, authorID, containerID, title, content string) domain.Slip {
	t.Helper()
	slip, err := svc.CreateSlip(context.Background(), authorID, containerID, title, content)
	if err != nil {
		t.Fatalf("create slip %s: %v", title, err)
	}
	return slip
}

func assertCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected coded error %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}

func intPtr(v int) *int {
	return &v
}

func TestEnsureUserProvisionsOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, identity.Identity{SubjectID: "sub-1", Email: "ada@example.test"}, "Ada")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := svc.EnsureUser(ctx, identity.Identity{SubjectID: "sub-1", Email: "ada@example.test"}, "Ada")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same user across calls, got %s and %s", first.ID, second.ID)
	}
}

func TestEnsureUserRefreshesProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.EnsureUser(ctx, identity.Identity{SubjectID: "sub-1", Email: "old@example.test"}, "Old Name"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	updated, err := svc.EnsureUser(ctx, identity.Identity{SubjectID: "sub-1", Email: "new@example.test"}, "New Name")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if updated.DisplayName != "New Name" {
		t.Fatalf("expected refreshed display name, got %q", updated.DisplayName)
	}
	if updated.Email != "new@example.test" {
		t.Fatalf("expected refreshed email, got %q", updated.Email)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "missing")
	assertCode(t, err, apperrors.CodeUserNotFound)
}
