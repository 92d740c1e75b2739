package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/identity"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// EnsureUser returns the account for a verified identity, provisioning it
// on first contact. Profile fields refresh on later calls; the subject
// binding never changes.
func (s *Service) EnsureUser(ctx context.Context, id identity.Identity, displayName string) (domain.User, error) {
	existing, err := s.store.GetUserBySubject(ctx, id.SubjectID)
	if err == nil {
		changed := false
		if displayName != "" && displayName != existing.DisplayName {
			existing.DisplayName = displayName
			changed = true
		}
		if id.Email != "" && id.Email != existing.Email {
			existing.Email = id.Email
			changed = true
		}
		if !changed {
			return existing, nil
		}
		existing.UpdatedAt = s.now()
		if err := s.store.PutUser(ctx, existing); err != nil {
			return domain.User{}, fmt.Errorf("update user profile: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return domain.User{}, fmt.Errorf("find user by subject: %w", err)
	}

	user, err := domain.CreateUser(domain.CreateUserInput{
		SubjectID:   id.SubjectID,
		Email:       id.Email,
		DisplayName: displayName,
	}, s.clock, s.idGenerator)
	if err != nil {
		return domain.User{}, err
	}

	if err := s.store.PutUser(ctx, user); err != nil {
		// Another request provisioned the same subject first.
		if errors.Is(err, storage.ErrConflict) {
			provisioned, getErr := s.store.GetUserBySubject(ctx, id.SubjectID)
			if getErr != nil {
				return domain.User{}, fmt.Errorf("find provisioned user: %w", getErr)
			}
			return provisioned, nil
		}
		return domain.User{}, fmt.Errorf("persist user: %w", err)
	}
	return user, nil
}

// GetUser fetches a user account by internal ID.
func (s *Service) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, apperrors.New(apperrors.CodeUserNotFound, "user was not found")
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
