package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/slipjar/internal/journal/authz"
	"github.com/louisbranch/slipjar/internal/journal/domain"
)

// CreateContainer creates a container owned by the actor. The owner's admin
// membership lands in the same transaction, so a container never exists
// without members.
func (s *Service) CreateContainer(ctx context.Context, actorUserID, name string) (domain.Container, error) {
	container, err := domain.CreateContainer(domain.CreateContainerInput{
		OwnerUserID: actorUserID,
		Name:        name,
	}, s.clock, s.idGenerator)
	if err != nil {
		return domain.Container{}, err
	}

	owner, err := domain.CreateMembership(domain.CreateMembershipInput{
		UserID:      container.OwnerUserID,
		ContainerID: container.ID,
		Role:        domain.RoleAdmin,
	}, s.clock)
	if err != nil {
		return domain.Container{}, err
	}

	if err := s.store.CreateContainer(ctx, container, owner); err != nil {
		return domain.Container{}, fmt.Errorf("persist container: %w", err)
	}
	return container, nil
}

// GetContainer fetches a container the actor belongs to.
func (s *Service) GetContainer(ctx context.Context, actorUserID, containerID string) (domain.Container, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return domain.Container{}, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return domain.Container{}, err
	}
	if !authz.Can(actor, authz.ResourceContainer, authz.ActionView) {
		return domain.Container{}, forbidden("view", "container")
	}
	return container, nil
}

// ListContainers returns every container the actor belongs to.
func (s *Service) ListContainers(ctx context.Context, actorUserID string) ([]domain.Container, error) {
	containers, err := s.store.ListContainersByUser(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return containers, nil
}

// UpdateContainer renames a container. Admin only.
func (s *Service) UpdateContainer(ctx context.Context, actorUserID, containerID, name string) (domain.Container, error) {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return domain.Container{}, err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return domain.Container{}, err
	}
	if !authz.Can(actor, authz.ResourceContainer, authz.ActionUpdate) {
		return domain.Container{}, forbidden("update", "container")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Container{}, domain.ErrEmptyContainerName
	}

	container.Name = name
	container.UpdatedAt = s.now()
	if err := s.store.UpdateContainer(ctx, container); err != nil {
		return domain.Container{}, fmt.Errorf("update container: %w", err)
	}
	return container, nil
}

// DeleteContainer removes a container and everything it owns. Owner only.
func (s *Service) DeleteContainer(ctx context.Context, actorUserID, containerID string) error {
	container, err := s.requireContainer(ctx, containerID)
	if err != nil {
		return err
	}
	actor, err := s.containerActor(ctx, actorUserID, container)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ResourceContainer, authz.ActionDelete) {
		return forbidden("delete", "container")
	}

	if err := s.store.DeleteContainer(ctx, containerID); err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	return nil
}
