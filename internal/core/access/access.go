// Package access holds the authorization core: pure predicates deciding, per
// resource and per (actor, target) pair, whether an operation is permitted.
// Every predicate is deterministic given only its arguments, with no state and
// no I/O, which makes the package trivially safe under concurrent request
// handling.
//
// Resolving the actor (token verification, account lookup) and persisting the
// outcome are collaborator concerns; by the time a predicate runs, the
// Principal is trusted.
package access

import "github.com/scubalog/dive-log-api/internal/core/domain"

// Reason tags a denial so callers can map it to the right response without
// re-deriving the rule that fired.
type Reason string

const (
	// ReasonForbiddenRole: the actor's role can never perform this operation.
	ReasonForbiddenRole Reason = "forbidden-role"
	// ReasonForbiddenSelf: the operation may not target the actor's own account.
	ReasonForbiddenSelf Reason = "forbidden-self"
	// ReasonForbiddenHierarchy: the target sits outside the actor's reach.
	ReasonForbiddenHierarchy Reason = "forbidden-hierarchy"
)

// Decision is the outcome of a predicate. Reason is set only on denial.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Target identifies the user an operation acts on.
type Target struct {
	ID      string
	Role    domain.Role
	Enabled bool
}

// TargetUser builds a Target from a stored user.
func TargetUser(u *domain.User) Target {
	return Target{ID: u.ID, Role: u.Role, Enabled: u.Enabled}
}

// ── User resource ────────────────────────────────────────────────────────────

// CanCreateUser decides whether actor may create a user with the requested
// role. requestedSet distinguishes "role omitted" from an explicit request.
// Admins may only create basic users: an explicit request for any other role
// is denied rather than silently downgraded. Super admins may assign any role.
func CanCreateUser(actor domain.Principal, requested domain.Role, requestedSet bool) Decision {
	switch {
	case actor.Role.IsBasicLevel():
		return deny(ReasonForbiddenRole)
	case actor.Role == domain.RoleAdmin:
		if requestedSet && requested != domain.RoleBasicUser {
			return deny(ReasonForbiddenHierarchy)
		}
		return allow()
	default:
		return allow()
	}
}

// NewUserRole returns the role the created user will carry. Only a super admin
// request is honoured; everyone else's creations default to basic_user.
func NewUserRole(actor domain.Principal, requested domain.Role, requestedSet bool) domain.Role {
	if actor.Role == domain.RoleSuperAdmin && requestedSet {
		return requested
	}
	return domain.RoleBasicUser
}

// CanListUsers decides whether actor may list user accounts at all. The
// per-role narrowing of the result set is CanSeeUserInList.
func CanListUsers(actor domain.Principal) Decision {
	if actor.Role.IsBasicLevel() {
		return deny(ReasonForbiddenRole)
	}
	return allow()
}

// CanSeeUserInList reports whether a listed user with the given role is
// visible to actor. Admins see only basic-level users, not even themselves.
func CanSeeUserInList(actor domain.Principal, targetRole domain.Role) bool {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleAdmin:
		return targetRole.IsBasicLevel()
	default:
		return false
	}
}

// CanReadUser decides whether actor may read target via the by-id path.
// An admin reading their own record through this path is denied; the self
// profile path is the sanctioned route. Self reads via "me" bypass this
// predicate entirely.
func CanReadUser(actor domain.Principal, target Target) Decision {
	switch {
	case actor.Role.IsBasicLevel():
		return deny(ReasonForbiddenRole)
	case actor.Role == domain.RoleAdmin && actor.ID == target.ID:
		return deny(ReasonForbiddenSelf)
	case actor.Role == domain.RoleAdmin && target.Role.IsAdminLevel():
		return deny(ReasonForbiddenHierarchy)
	default:
		return allow()
	}
}

// CanReadUserPath decides whether actor may attempt the by-id read at all,
// before the target is known. Kept separate so the role gate fires without a
// lookup, matching CanReadUser's pre-fetch half.
func CanReadUserPath(actor domain.Principal, targetID string) Decision {
	switch {
	case actor.Role.IsBasicLevel():
		return deny(ReasonForbiddenRole)
	case actor.Role == domain.RoleAdmin && actor.ID == targetID:
		return deny(ReasonForbiddenSelf)
	default:
		return allow()
	}
}

// CanUpdateUser decides whether actor may update target through the admin
// path. A super_admin target is off limits to everyone, the actor included;
// self updates go through the "me" path.
func CanUpdateUser(actor domain.Principal, target Target) Decision {
	switch {
	case actor.Role.IsBasicLevel():
		return deny(ReasonForbiddenRole)
	case target.Role == domain.RoleSuperAdmin:
		return deny(ReasonForbiddenHierarchy)
	case actor.Role == domain.RoleAdmin && target.Role.IsAdminLevel():
		return deny(ReasonForbiddenHierarchy)
	default:
		return allow()
	}
}

// CanDeleteUser decides whether actor may delete target. Self deletion is
// forbidden for every role, and super admins are never deletable.
func CanDeleteUser(actor domain.Principal, target Target) Decision {
	if d := CanDeleteUserPath(actor, target.ID); !d.Allowed {
		return d
	}
	switch {
	case target.Role == domain.RoleSuperAdmin:
		return deny(ReasonForbiddenHierarchy)
	case actor.Role == domain.RoleAdmin && target.Role.IsAdminLevel():
		return deny(ReasonForbiddenHierarchy)
	default:
		return allow()
	}
}

// CanDeleteUserPath is the pre-fetch half of CanDeleteUser: the role gate and
// the self-deletion ban, both decidable from the target id alone. The role
// gate fires first, so a basic user deleting themselves is denied for their
// role, not for self-targeting.
func CanDeleteUserPath(actor domain.Principal, targetID string) Decision {
	if actor.Role.IsBasicLevel() {
		return deny(ReasonForbiddenRole)
	}
	if actor.ID == targetID {
		return deny(ReasonForbiddenSelf)
	}
	return allow()
}

// CanToggleUserEnabled decides whether actor may enable or disable target.
// Super admin targets can never be toggled, not even by super admins.
func CanToggleUserEnabled(actor domain.Principal, target Target) Decision {
	switch {
	case actor.Role.IsBasicLevel():
		return deny(ReasonForbiddenRole)
	case target.Role == domain.RoleSuperAdmin:
		return deny(ReasonForbiddenHierarchy)
	case actor.Role == domain.RoleAdmin && !target.Role.IsBasicLevel():
		return deny(ReasonForbiddenHierarchy)
	default:
		return allow()
	}
}

// ── DiveLog resource ─────────────────────────────────────────────────────────

// OwnsLog reports whether the actor owns the log with the given resolved
// owner. An orphaned log (nil owner) is owned by nobody.
func OwnsLog(actor domain.Principal, owner *domain.Owner) bool {
	return owner != nil && owner.ID == actor.ID
}

// CanAccessLog decides read, update and delete access to a single dive log.
// The nil-owner (orphaned) case is explicit for every role: admins may access
// orphaned logs, basic users may not.
func CanAccessLog(actor domain.Principal, owner *domain.Owner) Decision {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return allow()
	case domain.RoleAdmin:
		if owner == nil || owner.Role.IsBasicLevel() || OwnsLog(actor, owner) {
			return allow()
		}
		return deny(ReasonForbiddenHierarchy)
	default:
		if OwnsLog(actor, owner) {
			return allow()
		}
		return deny(ReasonForbiddenHierarchy)
	}
}

// CanCreateLogFor decides delegated creation: whether actor may create a log
// owned by target. Basic users never reach this predicate; their requested
// owner is discarded and forced to themselves.
func CanCreateLogFor(actor domain.Principal, target Target) Decision {
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return allow()
	case domain.RoleAdmin:
		if target.ID == actor.ID || target.Role.IsBasicLevel() {
			return allow()
		}
		return deny(ReasonForbiddenHierarchy)
	default:
		if target.ID == actor.ID {
			return allow()
		}
		return deny(ReasonForbiddenHierarchy)
	}
}

// CanSeeLogInList is the post-query filter applied when listing dive logs for
// admin-level actors. activeOnly excludes logs whose owner is missing or
// disabled. Basic users never use this path: their restriction is pushed down
// into the query itself.
func CanSeeLogInList(actor domain.Principal, owner *domain.Owner, activeOnly bool) bool {
	if activeOnly && (owner == nil || !owner.Enabled) {
		return false
	}
	switch actor.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleAdmin:
		return owner == nil || owner.Role.IsBasicLevel() || OwnsLog(actor, owner)
	default:
		return OwnsLog(actor, owner)
	}
}
