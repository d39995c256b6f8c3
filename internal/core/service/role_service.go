package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// RoleService implements ports.RoleService. The whole resource is gated to
// super admins at the route level, so no per-operation access checks run here.
type RoleService struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, log: log}
}

func (s *RoleService) Create(ctx context.Context, name, description string) (*domain.RoleDefinition, error) {
	if name == "" || description == "" {
		return nil, domain.E(domain.ErrValidation, "The fields name and description are mandatory!")
	}

	if existing, err := s.roles.FindByName(ctx, name); err == nil && existing != nil {
		return nil, domain.E(domain.ErrRoleNameExists, "Role with name %q already exists!", name)
	} else if err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.roles.Create(ctx, &domain.RoleDefinition{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoleNameExists) {
			return nil, domain.E(domain.ErrRoleNameExists, "Role with name %q already exists!", name)
		}
		return nil, err
	}

	s.log.Info().Str("role_id", created.ID).Str("name", name).Msg("role created")
	return created, nil
}

func (s *RoleService) List(ctx context.Context) ([]*domain.RoleDefinition, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.RoleDefinition, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, roleNotFound(err, id)
	}
	return role, nil
}

func (s *RoleService) UpdateDescription(ctx context.Context, id, description string) (*domain.RoleDefinition, error) {
	if description == "" {
		return nil, domain.E(domain.ErrValidation, "The field description is mandatory!")
	}

	role, err := s.roles.UpdateDescription(ctx, id, description)
	if err != nil {
		return nil, roleNotFound(err, id)
	}
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		return roleNotFound(err, id)
	}
	s.log.Info().Str("role_id", id).Msg("role deleted")
	return nil
}

func roleNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrRoleNotFound) {
		return domain.E(domain.ErrRoleNotFound, "Role with id %q not found!", id)
	}
	return err
}
