package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/scubalog/dive-log-api/internal/core/access"
	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
	"github.com/scubalog/dive-log-api/internal/pkg/password"
)

const (
	msgNoAccess       = "You are not allowed to access this resource!"
	msgForbidden      = "Forbidden!"
	msgNoAccessToggle = "You have no access to this resource!"
	msgSelfDelete     = "You can't delete yourself!"
)

var fieldValidator = validator.New()

// UserService implements ports.UserService. Every operation runs the access
// predicates before any read or write; check ordering within each operation
// is part of the API contract (role gate before field validation, validation
// before lookups).
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	logs  ports.DiveLogRepository
	salt  string
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logs ports.DiveLogRepository, salt string, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logs: logs, salt: salt, log: log}
}

func (s *UserService) Create(ctx context.Context, actor domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	requested := domain.Role(in.RoleName)
	if d := access.CanCreateUser(actor, requested, in.RoleSet); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}

	if in.Email == "" || in.FullName == "" || in.Password == "" {
		return nil, domain.E(domain.ErrValidation, "The fields email, fullName, and password are mandatory!")
	}
	if err := fieldValidator.Var(in.Email, "email"); err != nil {
		return nil, domain.E(domain.ErrValidation, "Please include a valid email")
	}
	if err := fieldValidator.Var(in.Password, "min=12"); err != nil {
		return nil, domain.E(domain.ErrValidation, "Please enter a password with 12 or more characters")
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.E(domain.ErrEmailExists, "User with this email already exists!")
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	roleName := string(access.NewUserRole(actor, requested, in.RoleSet))
	if _, err := s.roles.FindByName(ctx, roleName); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.E(domain.ErrRoleNotFound, "Role with name %q not found!", roleName)
		}
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: password.Hash(in.Password, s.salt),
		Role:         domain.Role(roleName),
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, domain.E(domain.ErrEmailExists, "User with this email already exists!")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", roleName).Str("actor_id", actor.ID).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context, actor domain.Principal, in ports.ListUsersInput) ([]*domain.User, error) {
	if d := access.CanListUsers(actor); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}

	users, err := s.users.List(ctx, ports.ListUsersFilter{
		EnabledOnly: in.ActiveUsersOnly,
		SortBy:      in.SortBy,
		SortDesc:    in.SortDesc,
		MaxAmount:   in.MaxAmount,
	})
	if err != nil {
		return nil, err
	}

	// Role-based narrowing cannot be pushed into the query: admins see only
	// basic-level users, which depends on the actor, not the stored filter.
	visible := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if access.CanSeeUserInList(actor, u.Role) {
			visible = append(visible, u)
		}
	}
	return visible, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.User, error) {
	if d := access.CanReadUserPath(actor, id); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}

	if d := access.CanReadUser(actor, access.TargetUser(user)); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if actor.Role.IsBasicLevel() {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}
	if in.FullName == "" {
		return nil, domain.E(domain.ErrValidation, "The field fullName is mandatory!")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}

	if d := access.CanUpdateUser(actor, access.TargetUser(user)); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}

	// Only the supplied fields change; email, password and role are preserved.
	user.FullName = in.FullName
	if in.Enabled != nil {
		user.Enabled = *in.Enabled
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if d := access.CanDeleteUserPath(actor, id); !d.Allowed {
		if d.Reason == access.ReasonForbiddenSelf {
			return domain.E(domain.ErrForbidden, msgSelfDelete)
		}
		return domain.E(domain.ErrForbidden, msgNoAccess)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return userNotFound(err, id)
	}

	if d := access.CanDeleteUser(actor, access.TargetUser(user)); !d.Allowed {
		return domain.E(domain.ErrForbidden, msgNoAccess)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return userNotFound(err, id)
	}

	// The user's logs survive as orphans; only the owner reference is nulled.
	if err := s.logs.DetachOwner(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to detach dive logs from deleted user")
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}

func (s *UserService) SetEnabled(ctx context.Context, actor domain.Principal, id string, enabled bool) (bool, error) {
	if actor.Role.IsBasicLevel() {
		return false, domain.E(domain.ErrForbidden, msgForbidden)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, userNotFound(err, id)
	}

	if d := access.CanToggleUserEnabled(actor, access.TargetUser(user)); !d.Allowed {
		return false, domain.E(domain.ErrForbidden, msgNoAccessToggle)
	}

	if user.Enabled == enabled {
		return true, nil
	}

	user.Enabled = enabled
	user.UpdatedAt = time.Now().UTC()
	if _, err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	s.log.Info().Str("user_id", id).Bool("enabled", enabled).Str("actor_id", actor.ID).Msg("user toggled")
	return false, nil
}

func (s *UserService) UpdateSelf(ctx context.Context, actor domain.Principal, in ports.UpdateSelfInput) (*domain.User, bool, error) {
	if in.Email == "" && in.FullName == "" && in.Password == "" {
		return nil, false, nil
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, false, userNotFound(err, actor.ID)
	}

	if in.Email != "" {
		user.Email = in.Email
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Password != "" {
		user.PasswordHash = password.Hash(in.Password, s.salt)
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, false, domain.E(domain.ErrEmailExists, "User with this email already exists!")
		}
		return nil, false, err
	}
	return updated, true, nil
}

func userNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.E(domain.ErrUserNotFound, "User with id %q not found!", id)
	}
	return err
}
