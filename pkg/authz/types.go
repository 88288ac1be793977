package authz

import "github.com/google/uuid"

// Facility is the organizational subdivision an actor or a content item is
// scoped to. FacilityOrganization denotes the unscoped, corporate-wide scope.
type Facility string

const (
	FacilityOrganization Facility = "organization"
	FacilityNorthgate    Facility = "northgate"
	FacilityRiverside    Facility = "riverside"
	FacilityHilltop      Facility = "hilltop"
)

func Facilities() []Facility {
	return []Facility{
		FacilityOrganization,
		FacilityNorthgate,
		FacilityRiverside,
		FacilityHilltop,
	}
}

func (f Facility) Valid() bool {
	switch f {
	case FacilityOrganization, FacilityNorthgate, FacilityRiverside, FacilityHilltop:
		return true
	}
	return false
}

type Role string

const (
	// RoleCorporateAdmin may perform every action on every facility scope,
	// including approval decisions.
	RoleCorporateAdmin Role = "corporate_admin"
	// RoleFacilityAdmin is bound to exactly one facility.
	RoleFacilityAdmin Role = "facility_admin"
	// RoleStandard is read-only.
	RoleStandard Role = "standard"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

// Actor is the identity resolved by the authentication layer for the current
// request. The core never authenticates; it trusts the actor as given and
// passes it explicitly into every operation. Facility is meaningful only for
// RoleFacilityAdmin.
type Actor struct {
	ID       uuid.UUID
	Name     string
	Role     Role
	Facility Facility
}

func (a Actor) IsCorporate() bool {
	return a.Role == RoleCorporateAdmin
}
