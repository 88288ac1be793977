package authz

import "github.com/evergreen-centers/evergreen/pkg/serrors"

// Decision is the outcome of a policy evaluation. Zero value denies.
type Decision struct {
	allowed bool
	reason  string
}

func Allow() Decision {
	return Decision{allowed: true}
}

func Deny(reason string) Decision {
	return Decision{reason: reason}
}

func (d Decision) Allowed() bool {
	return d.allowed
}

func (d Decision) Reason() string {
	return d.reason
}

// Err returns nil for an allowing decision and the canonical forbidden error
// otherwise.
func (d Decision) Err() error {
	if d.allowed {
		return nil
	}
	return serrors.NewError("AUTHZ_FORBIDDEN", d.reason, "Authorization.PermissionDenied")
}

// Decide evaluates whether actor may perform action on content scoped to
// target. Pure function, no I/O. Rules are evaluated in order; the first
// match wins:
//
//  1. corporate admins may do everything on every scope
//  2. facility admins may create, read, update and submit within their own
//     facility, and delete within it (the lifecycle additionally blocks
//     deleting published items); they may never approve or reject
//  3. standard users are read-only
//  4. everything else is denied
func Decide(actor Actor, action Action, target Facility) Decision {
	switch actor.Role {
	case RoleCorporateAdmin:
		return Allow()
	case RoleFacilityAdmin:
		if action == ActionApprove || action == ActionReject {
			return Deny("facility admins cannot decide approvals")
		}
		if actor.Facility != target {
			return Deny("facility admins are limited to their own facility")
		}
		switch action {
		case ActionCreate, ActionRead, ActionUpdate, ActionSubmit, ActionDelete:
			return Allow()
		}
		return Deny("action not permitted for facility admins")
	case RoleStandard:
		if action == ActionRead {
			return Allow()
		}
		return Deny("standard users are read-only")
	}
	return Deny("unknown role")
}
