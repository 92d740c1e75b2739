// Package service implements the journal operations behind the API
// surface. Every mutation resolves the target resource first, then consults
// the authorization table, then writes through storage. Missing resources
// always surface before permission denials so callers cannot probe for
// hidden resources.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/slipjar/internal/platform/errors"

	"github.com/louisbranch/slipjar/internal/journal/authz"
	"github.com/louisbranch/slipjar/internal/journal/domain"
	"github.com/louisbranch/slipjar/internal/journal/objectstore"
	"github.com/louisbranch/slipjar/internal/journal/storage"
)

// Service coordinates journal state changes through storage and the
// external object store.
type Service struct {
	store         storage.Store
	objects       objectstore.ObjectStore
	clock         func() time.Time
	idGenerator   func() (string, error)
	codeGenerator func(length int) (string, error)
	// baseURL prefixes shareable invite links.
	baseURL string
}

// New creates a Service with default clock and generators.
func New(store storage.Store, objects objectstore.ObjectStore, baseURL string) *Service {
	return &Service{
		store:         store,
		objects:       objects,
		clock:         time.Now,
		idGenerator:   domain.NewID,
		codeGenerator: domain.GenerateCode,
		baseURL:       baseURL,
	}
}

// forbidden builds the uniform permission denial for an action on a
// resource kind.
func forbidden(action, resource string) error {
	return apperrors.WithMetadata(
		apperrors.CodePermissionDenied,
		fmt.Sprintf("not allowed to %s this %s", action, resource),
		map[string]string{"Action": action, "Resource": resource},
	)
}

// requireContainer resolves a container or reports it missing.
func (s *Service) requireContainer(ctx context.Context, containerID string) (domain.Container, error) {
	container, err := s.store.GetContainer(ctx, containerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Container{}, apperrors.New(apperrors.CodeContainerNotFound, "container was not found")
		}
		return domain.Container{}, fmt.Errorf("get container: %w", err)
	}
	return container, nil
}

// requireSlip resolves a slip or reports it missing.
func (s *Service) requireSlip(ctx context.Context, slipID string) (domain.Slip, error) {
	slip, err := s.store.GetSlip(ctx, slipID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Slip{}, apperrors.New(apperrors.CodeSlipNotFound, "slip was not found")
		}
		return domain.Slip{}, fmt.Errorf("get slip: %w", err)
	}
	return slip, nil
}

// membershipRole resolves the actor's role in a container. Non-members get
// RoleUnspecified without an error.
func (s *Service) membershipRole(ctx context.Context, userID, containerID string) (domain.Role, error) {
	membership, err := s.store.GetMembership(ctx, userID, containerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.RoleUnspecified, nil
		}
		return domain.RoleUnspecified, fmt.Errorf("get membership: %w", err)
	}
	return membership.Role, nil
}

// containerActor builds the authorization view of one user against one
// container.
func (s *Service) containerActor(ctx context.Context, userID string, container domain.Container) (authz.Actor, error) {
	role, err := s.membershipRole(ctx, userID, container.ID)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{
		Role:  role,
		Owner: container.OwnerUserID == userID,
	}, nil
}

// now returns the injected clock's current time in UTC.
func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}
