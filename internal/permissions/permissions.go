package permissions

import (
	"github.com/barberscore/registry/internal/models"
)

// Reason tags why a decision was reached
type Reason string

const (
	ReasonStaffOverride   Reason = "staff_override"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonRole            Reason = "role"
	ReasonOwner           Reason = "owner"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonForbidden       Reason = "forbidden"
)

// Decision is a tagged allow/deny result
type Decision struct {
	Allowed bool
	Reason  Reason
}

// IsUnauthenticated reports whether the denial was for a missing actor
func (d Decision) IsUnauthenticated() bool {
	return !d.Allowed && d.Reason == ReasonUnauthenticated
}

func allow(r Reason) Decision {
	return Decision{Allowed: true, Reason: r}
}

func deny(r Reason) Decision {
	return Decision{Allowed: false, Reason: r}
}

// Predicate inspects an actor and either settles the decision or defers to
// the next predicate in the chain.
type Predicate func(actor *models.User) (Decision, bool)

// chain evaluates predicates in order; the first one that settles wins.
// An exhausted chain denies.
func chain(actor *models.User, preds ...Predicate) Decision {
	for _, p := range preds {
		if d, ok := p(actor); ok {
			return d
		}
	}
	return deny(ReasonForbidden)
}

// staffOverride allows staff and superusers unconditionally
func staffOverride(actor *models.User) (Decision, bool) {
	if actor != nil && (actor.IsStaff || actor.IsSuperuser) {
		return allow(ReasonStaffOverride), true
	}
	return Decision{}, false
}

// authenticated denies anonymous actors
func authenticated(actor *models.User) (Decision, bool) {
	if actor == nil {
		return deny(ReasonUnauthenticated), true
	}
	return Decision{}, false
}

func allowAuthenticated(actor *models.User) (Decision, bool) {
	return allow(ReasonAuthenticated), true
}

func denyAlways(actor *models.User) (Decision, bool) {
	return deny(ReasonForbidden), true
}

func anyRole(names ...string) Predicate {
	return func(actor *models.User) (Decision, bool) {
		if actor.HasAnyRole(names...) {
			return allow(ReasonRole), true
		}
		return Decision{}, false
	}
}

func listedOwner(ownerIDs []string) Predicate {
	return func(actor *models.User) (Decision, bool) {
		for _, id := range ownerIDs {
			if id == actor.ID {
				return allow(ReasonOwner), true
			}
		}
		return Decision{}, false
	}
}

// PersonRead: any authenticated actor may read persons
func PersonRead(actor *models.User) Decision {
	return chain(actor, staffOverride, authenticated, allowAuthenticated)
}

// PersonWrite: persons are read-only except for staff and superusers
func PersonWrite(actor *models.User) Decision {
	return chain(actor, staffOverride, authenticated, denyAlways)
}

// PersonObjectWrite matches the collection-level rule
func PersonObjectWrite(actor *models.User, p *models.Person) Decision {
	return PersonWrite(actor)
}

// GroupRead: any authenticated actor may read groups
func GroupRead(actor *models.User) Decision {
	return chain(actor, staffOverride, authenticated, allowAuthenticated)
}

// GroupWrite: collection-level writes require one of the fixed role set
func GroupWrite(actor *models.User) Decision {
	return chain(actor, staffOverride, authenticated,
		anyRole(models.RoleSCJC, models.RoleLibrarian, models.RoleManager))
}

// GroupObjectWrite: SCJC, Librarian, or a listed owner of the group
func GroupObjectWrite(actor *models.User, g *models.Group) Decision {
	return chain(actor, staffOverride, authenticated,
		anyRole(models.RoleSCJC, models.RoleLibrarian),
		listedOwner(g.OwnerIDs))
}
