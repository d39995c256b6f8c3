package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/scubalog/dive-log-api/internal/core/access"
	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// DiveLogService implements ports.DiveLogService. Single-log access goes
// through access.CanAccessLog after resolving the owner; listing uses the two
// deliberate strategies described on ports.DiveLogRepository.
type DiveLogService struct {
	logs  ports.DiveLogRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewDiveLogService(logs ports.DiveLogRepository, users ports.UserRepository, log zerolog.Logger) *DiveLogService {
	return &DiveLogService{logs: logs, users: users, log: log}
}

func (s *DiveLogService) Create(ctx context.Context, actor domain.Principal, in ports.CreateLogInput) (*domain.DiveLog, error) {
	if err := validateLogFields(in.LogFields); err != nil {
		return nil, err
	}

	// Owner defaults to the actor. A basic user's requested owner is
	// discarded outright; everyone else's is access-checked.
	ownerID := actor.ID
	if in.ForUserID != "" && !actor.Role.IsBasicLevel() {
		target, err := s.users.FindByID(ctx, in.ForUserID)
		if err != nil {
			return nil, userNotFound(err, in.ForUserID)
		}
		if d := access.CanCreateLogFor(actor, access.TargetUser(target)); !d.Allowed {
			return nil, domain.E(domain.ErrForbidden, "You are not allowed to create a log for this user.")
		}
		ownerID = target.ID
	}

	now := time.Now().UTC()
	l := logFromFields(in.LogFields)
	l.OwnerID = &ownerID
	l.CreatedAt = now
	l.UpdatedAt = now

	created, err := s.logs.Create(ctx, l)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("log_id", created.ID).Str("owner_id", ownerID).Str("actor_id", actor.ID).Msg("dive log created")
	return created, nil
}

func (s *DiveLogService) List(ctx context.Context, actor domain.Principal, in ports.ListLogsInput) ([]*domain.DiveLog, error) {
	q := ports.LogQuery{
		StartFrom: in.StartFrom,
		StartTo:   in.StartTo,
		SortBy:    in.SortBy,
		SortDesc:  in.SortDesc,
		MaxAmount: in.MaxAmount,
	}

	// Basic users: ownership is pushed down into the store query.
	if actor.Role.IsBasicLevel() {
		return s.logs.ListOwned(ctx, actor.ID, q)
	}

	// Admin-level actors: retrieve broadly, then filter on resolved owner
	// role and enabled state, which live in another collection.
	logs, err := s.logs.List(ctx, q)
	if err != nil {
		return nil, err
	}

	owners, err := s.resolveOwners(ctx, logs)
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.DiveLog, 0, len(logs))
	for _, l := range logs {
		if access.CanSeeLogInList(actor, ownerRef(l, owners), in.ActiveUsersOnly) {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

func (s *DiveLogService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.DiveLog, error) {
	l, owner, err := s.findWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.CanAccessLog(actor, owner); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}
	return l, nil
}

func (s *DiveLogService) Update(ctx context.Context, actor domain.Principal, id string, in ports.LogFields) (*domain.DiveLog, error) {
	if err := validateLogFields(in); err != nil {
		return nil, err
	}

	l, owner, err := s.findWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := access.CanAccessLog(actor, owner); !d.Allowed {
		return nil, domain.E(domain.ErrForbidden, msgNoAccess)
	}

	// The update carries the full payload; owner, id and creation time are
	// never touched.
	updated := logFromFields(in)
	updated.ID = l.ID
	updated.OwnerID = l.OwnerID
	updated.CreatedAt = l.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	return s.logs.Update(ctx, updated)
}

func (s *DiveLogService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	l, owner, err := s.findWithOwner(ctx, id)
	if err != nil {
		return err
	}
	if d := access.CanAccessLog(actor, owner); !d.Allowed {
		return domain.E(domain.ErrForbidden, msgNoAccess)
	}

	if err := s.logs.Delete(ctx, l.ID); err != nil {
		return logNotFound(err, id)
	}

	s.log.Info().Str("log_id", l.ID).Str("actor_id", actor.ID).Msg("dive log deleted")
	return nil
}

// findWithOwner fetches a log and resolves its owner reference. A missing or
// dangling owner yields a nil Owner (orphaned log).
func (s *DiveLogService) findWithOwner(ctx context.Context, id string) (*domain.DiveLog, *domain.Owner, error) {
	l, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, nil, logNotFound(err, id)
	}

	if l.OwnerID == nil {
		return l, nil, nil
	}
	owner, err := s.users.FindByID(ctx, *l.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return l, nil, nil
		}
		return nil, nil, err
	}
	return l, domain.OwnerOf(owner), nil
}

// resolveOwners batch-resolves the owners of a list of logs.
func (s *DiveLogService) resolveOwners(ctx context.Context, logs []*domain.DiveLog) (map[string]*domain.User, error) {
	ids := make([]string, 0, len(logs))
	seen := make(map[string]struct{}, len(logs))
	for _, l := range logs {
		if l.OwnerID == nil {
			continue
		}
		if _, ok := seen[*l.OwnerID]; ok {
			continue
		}
		seen[*l.OwnerID] = struct{}{}
		ids = append(ids, *l.OwnerID)
	}
	if len(ids) == 0 {
		return map[string]*domain.User{}, nil
	}
	return s.users.FindByIDs(ctx, ids)
}

func ownerRef(l *domain.DiveLog, owners map[string]*domain.User) *domain.Owner {
	if l.OwnerID == nil {
		return nil
	}
	return domain.OwnerOf(owners[*l.OwnerID])
}

func validateLogFields(f ports.LogFields) error {
	if f.StartTime.IsZero() || f.EndTime.IsZero() || f.MaxDepth == 0 || f.Location == "" {
		return domain.E(domain.ErrValidation, "The fields startTime, endTime, maxDepth and location are mandatory!")
	}
	return nil
}

func logFromFields(f ports.LogFields) *domain.DiveLog {
	return &domain.DiveLog{
		StartTime:         f.StartTime,
		EndTime:           f.EndTime,
		MaxDepth:          f.MaxDepth,
		AvgDepth:          f.AvgDepth,
		WaterTemperature:  f.WaterTemperature,
		AirTemperature:    f.AirTemperature,
		TankMaterial:      f.TankMaterial,
		TankVolume:        f.TankVolume,
		TankStartPressure: f.TankStartPressure,
		TankEndPressure:   f.TankEndPressure,
		WaterBody:         f.WaterBody,
		Location:          f.Location,
		Visibility:        f.Visibility,
		AdditionalInfo:    f.AdditionalInfo,
	}
}

func logNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrDiveLogNotFound) {
		return domain.E(domain.ErrDiveLogNotFound, "Dive log with id %q not found!", id)
	}
	return err
}
