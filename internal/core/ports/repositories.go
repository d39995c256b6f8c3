package ports

import (
	"context"
	"time"

	"github.com/scubalog/dive-log-api/internal/core/domain"
)

// ListUsersFilter carries the query options for listing users. Role-based
// narrowing of the result happens in the service layer, not here.
type ListUsersFilter struct {
	EnabledOnly bool   // filter to enabled accounts at query level
	SortBy      string // document field name, default createdAt
	SortDesc    bool
	MaxAmount   int // 0 = unlimited; applied after sorting
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrEmailExists when the email is taken.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs resolves many users at once, keyed by id. Missing ids are
	// simply absent from the map (used for dive-log owner resolution).
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	// Update replaces the stored document for u.ID and returns the new state.
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository defines persistence operations for role definitions.
type RoleRepository interface {
	// Create inserts a role. Returns domain.ErrRoleNameExists on a duplicate name.
	Create(ctx context.Context, r *domain.RoleDefinition) (*domain.RoleDefinition, error)
	FindByID(ctx context.Context, id string) (*domain.RoleDefinition, error)
	FindByName(ctx context.Context, name string) (*domain.RoleDefinition, error)
	// List returns all roles sorted by creation time, newest first.
	List(ctx context.Context) ([]*domain.RoleDefinition, error)
	UpdateDescription(ctx context.Context, id, description string) (*domain.RoleDefinition, error)
	Delete(ctx context.Context, id string) error
}

// LogQuery carries the query options for listing dive logs. The time bounds
// are inclusive and apply to startTime.
type LogQuery struct {
	StartFrom *time.Time
	StartTo   *time.Time
	SortBy    string // document field name, default createdAt
	SortDesc  bool
	MaxAmount int // 0 = unlimited; applied after sorting
}

// DiveLogRepository defines persistence operations for dive logs. Two listing
// paths exist deliberately: ListOwned pushes the ownership restriction into
// the store query (the basic_user case), while List retrieves broadly so the
// service can post-filter on joined owner data (the admin/super_admin case,
// which cannot be expressed as a plain store query).
type DiveLogRepository interface {
	Create(ctx context.Context, l *domain.DiveLog) (*domain.DiveLog, error)
	FindByID(ctx context.Context, id string) (*domain.DiveLog, error)
	ListOwned(ctx context.Context, ownerID string, q LogQuery) ([]*domain.DiveLog, error)
	List(ctx context.Context, q LogQuery) ([]*domain.DiveLog, error)
	// Update replaces the stored document for l.ID and returns the new state.
	Update(ctx context.Context, l *domain.DiveLog) (*domain.DiveLog, error)
	Delete(ctx context.Context, id string) error
	// DetachOwner nulls the owner reference on every log owned by ownerID.
	// Called when the owning user is deleted; the logs themselves survive.
	DetachOwner(ctx context.Context, ownerID string) error
}
