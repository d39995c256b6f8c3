package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	clone := *u
	r.byID[u.ID] = &clone
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if f.EnabledOnly && !u.Enabled {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.SortDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if f.MaxAmount > 0 && len(out) > f.MaxAmount {
		out = out[:f.MaxAmount]
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byID[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, existing := range r.byID {
		if id != u.ID && existing.Email == u.Email {
			return nil, domain.ErrEmailExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubRoleRepo struct {
	byID   map[string]*domain.RoleDefinition
	nextID int
}

// newStubRoleRepo seeds the three built-in roles.
func newStubRoleRepo() *stubRoleRepo {
	r := &stubRoleRepo{byID: make(map[string]*domain.RoleDefinition)}
	for _, name := range []string{"basic_user", "admin", "super_admin"} {
		_, _ = r.Create(context.Background(), &domain.RoleDefinition{Name: name, Description: name})
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, def *domain.RoleDefinition) (*domain.RoleDefinition, error) {
	for _, existing := range r.byID {
		if existing.Name == def.Name {
			return nil, domain.ErrRoleNameExists
		}
	}
	r.nextID++
	clone := *def
	clone.ID = fmt.Sprintf("role-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.RoleDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *def
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.RoleDefinition, error) {
	for _, def := range r.byID {
		if def.Name == name {
			clone := *def
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.RoleDefinition, error) {
	var out []*domain.RoleDefinition
	for _, def := range r.byID {
		clone := *def
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubRoleRepo) UpdateDescription(_ context.Context, id, description string) (*domain.RoleDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	def.Description = description
	def.UpdatedAt = time.Now().UTC()
	clone := *def
	return &clone, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubLogRepo struct {
	byID     map[string]*domain.DiveLog
	nextID   int
	detached []string // owner ids passed to DetachOwner
}

func newStubLogRepo() *stubLogRepo {
	return &stubLogRepo{byID: make(map[string]*domain.DiveLog)}
}

func (r *stubLogRepo) add(l *domain.DiveLog) *domain.DiveLog {
	clone := *l
	r.byID[l.ID] = &clone
	return &clone
}

func (r *stubLogRepo) Create(_ context.Context, l *domain.DiveLog) (*domain.DiveLog, error) {
	r.nextID++
	clone := *l
	clone.ID = fmt.Sprintf("log-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLogRepo) FindByID(_ context.Context, id string) (*domain.DiveLog, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDiveLogNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLogRepo) ListOwned(_ context.Context, ownerID string, q ports.LogQuery) ([]*domain.DiveLog, error) {
	var out []*domain.DiveLog
	for _, l := range r.byID {
		if l.OwnerID == nil || *l.OwnerID != ownerID {
			continue
		}
		if !matchesTime(l, q) {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	return sortAndLimit(out, q), nil
}

func (r *stubLogRepo) List(_ context.Context, q ports.LogQuery) ([]*domain.DiveLog, error) {
	var out []*domain.DiveLog
	for _, l := range r.byID {
		if !matchesTime(l, q) {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	return sortAndLimit(out, q), nil
}

func (r *stubLogRepo) Update(_ context.Context, l *domain.DiveLog) (*domain.DiveLog, error) {
	if _, ok := r.byID[l.ID]; !ok {
		return nil, domain.ErrDiveLogNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrDiveLogNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubLogRepo) DetachOwner(_ context.Context, ownerID string) error {
	r.detached = append(r.detached, ownerID)
	for _, l := range r.byID {
		if l.OwnerID != nil && *l.OwnerID == ownerID {
			l.OwnerID = nil
		}
	}
	return nil
}

func matchesTime(l *domain.DiveLog, q ports.LogQuery) bool {
	if q.StartFrom != nil && l.StartTime.Before(*q.StartFrom) {
		return false
	}
	if q.StartTo != nil && l.StartTime.After(*q.StartTo) {
		return false
	}
	return true
}

func sortAndLimit(logs []*domain.DiveLog, q ports.LogQuery) []*domain.DiveLog {
	sort.Slice(logs, func(i, j int) bool {
		if q.SortDesc {
			return logs[i].CreatedAt.After(logs[j].CreatedAt)
		}
		return logs[i].CreatedAt.Before(logs[j].CreatedAt)
	})
	if q.MaxAmount > 0 && len(logs) > q.MaxAmount {
		logs = logs[:q.MaxAmount]
	}
	return logs
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seedUser(r *stubUserRepo, id string, role domain.Role, enabled bool) *domain.User {
	return r.add(&domain.User{
		ID:        id,
		Email:     id + "@example.com",
		FullName:  "User " + id,
		Role:      role,
		Enabled:   enabled,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
}

func seedLog(r *stubLogRepo, id string, ownerID *string) *domain.DiveLog {
	return r.add(&domain.DiveLog{
		ID:        id,
		StartTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		MaxDepth:  30,
		Location:  "Coral Reef",
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
}

func principalOf(u *domain.User) domain.Principal {
	return domain.PrincipalOf(u)
}

func strPtr(s string) *string { return &s }
