package ports

import (
	"context"
	"time"

	"github.com/scubalog/dive-log-api/internal/core/domain"
)

// AuthService authenticates credentials and issues bearer tokens.
type AuthService interface {
	// Login verifies the credentials and returns a signed token.
	// Errors: domain.ErrUserNotFound, domain.ErrAccountDisabled,
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}

// CreateUserInput carries a new account request. RoleName is the requested
// role; RoleSet distinguishes "omitted" from an explicit request.
type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	RoleName string
	RoleSet  bool
}

// UpdateUserInput is the admin-path update: only FullName and Enabled may
// change; everything else on the account is preserved. Enabled is a pointer
// so an explicit false is distinguishable from "not supplied".
type UpdateUserInput struct {
	FullName string
	Enabled  *bool
}

// UpdateSelfInput is the self-service update; empty fields are left untouched.
type UpdateSelfInput struct {
	Email    string
	FullName string
	Password string
}

// ListUsersInput carries the caller's listing options.
type ListUsersInput struct {
	ActiveUsersOnly bool
	SortBy          string
	SortDesc        bool
	MaxAmount       int
}

// UserService orchestrates account CRUD; every operation consults the access
// core with the acting principal before touching persistence.
type UserService interface {
	Create(ctx context.Context, actor domain.Principal, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context, actor domain.Principal, in ListUsersInput) ([]*domain.User, error)
	Get(ctx context.Context, actor domain.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
	// SetEnabled toggles the account. already reports an idempotent no-op
	// (the account was in the requested state before the call).
	SetEnabled(ctx context.Context, actor domain.Principal, id string, enabled bool) (already bool, err error)
	// UpdateSelf applies the self-service update. changed is false when the
	// input carried nothing to change.
	UpdateSelf(ctx context.Context, actor domain.Principal, in UpdateSelfInput) (u *domain.User, changed bool, err error)
}

// RoleService manages role definitions. Route-level middleware restricts the
// whole resource to super admins.
type RoleService interface {
	Create(ctx context.Context, name, description string) (*domain.RoleDefinition, error)
	List(ctx context.Context) ([]*domain.RoleDefinition, error)
	Get(ctx context.Context, id string) (*domain.RoleDefinition, error)
	UpdateDescription(ctx context.Context, id, description string) (*domain.RoleDefinition, error)
	Delete(ctx context.Context, id string) error
}

// LogFields carries the dive measurements shared by create and update.
type LogFields struct {
	StartTime         time.Time
	EndTime           time.Time
	MaxDepth          float64
	AvgDepth          *float64
	WaterTemperature  *float64
	AirTemperature    *float64
	TankMaterial      *domain.TankMaterial
	TankVolume        *float64
	TankStartPressure *float64
	TankEndPressure   *float64
	WaterBody         *string
	Location          string
	Visibility        *string
	AdditionalInfo    *string
}

// CreateLogInput carries a new dive log. ForUserID optionally names the user
// the log is created for; it is ignored for basic users (owner forced to the
// actor) and access-checked for everyone else.
type CreateLogInput struct {
	LogFields
	ForUserID string
}

// ListLogsInput carries the caller's listing options for dive logs. The time
// bounds are validated by the transport layer before this input is built.
type ListLogsInput struct {
	ActiveUsersOnly bool
	SortBy          string
	SortDesc        bool
	MaxAmount       int
	StartFrom       *time.Time
	StartTo         *time.Time
}

// DiveLogService orchestrates dive-log CRUD with ownership-aware access.
type DiveLogService interface {
	Create(ctx context.Context, actor domain.Principal, in CreateLogInput) (*domain.DiveLog, error)
	List(ctx context.Context, actor domain.Principal, in ListLogsInput) ([]*domain.DiveLog, error)
	Get(ctx context.Context, actor domain.Principal, id string) (*domain.DiveLog, error)
	Update(ctx context.Context, actor domain.Principal, id string, in LogFields) (*domain.DiveLog, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
