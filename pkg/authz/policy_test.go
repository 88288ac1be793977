package authz_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/evergreen-centers/evergreen/modules/content/permissions"
	"github.com/evergreen-centers/evergreen/pkg/authz"
)

// The content module's action catalog is the set of actions the policy must
// decide; driving the cross-product from it keeps the two from drifting.
var allActions = permissions.Actions

// expected mirrors the rule table: first match wins.
func expected(role authz.Role, action authz.Action, actorFacility, target authz.Facility) bool {
	switch role {
	case authz.RoleCorporateAdmin:
		return true
	case authz.RoleFacilityAdmin:
		if action == authz.ActionApprove || action == authz.ActionReject {
			return false
		}
		return actorFacility == target
	case authz.RoleStandard:
		return action == authz.ActionRead
	}
	return false
}

func TestDecide_FullCrossProduct(t *testing.T) {
	t.Parallel()

	roles := []authz.Role{authz.RoleCorporateAdmin, authz.RoleFacilityAdmin, authz.RoleStandard}
	for _, role := range roles {
		for _, action := range allActions {
			for _, actorFacility := range authz.Facilities() {
				for _, target := range authz.Facilities() {
					actor := authz.Actor{ID: uuid.New(), Role: role, Facility: actorFacility}
					got := authz.Decide(actor, action, target)
					want := expected(role, action, actorFacility, target)
					assert.Equal(t, want, got.Allowed(),
						fmt.Sprintf("role=%s action=%s actor=%s target=%s", role, action, actorFacility, target))
					if !want {
						assert.NotEmpty(t, got.Reason())
						assert.Error(t, got.Err())
					} else {
						assert.NoError(t, got.Err())
					}
				}
			}
		}
	}
}

func TestDecide_UnknownRoleDenied(t *testing.T) {
	t.Parallel()

	actor := authz.Actor{ID: uuid.New(), Role: authz.Role("intern")}
	for _, action := range allActions {
		assert.False(t, authz.Decide(actor, action, authz.FacilityNorthgate).Allowed())
	}
}

func TestDecide_IsPure(t *testing.T) {
	t.Parallel()

	actor := authz.Actor{ID: uuid.New(), Role: authz.RoleFacilityAdmin, Facility: authz.FacilityRiverside}
	first := authz.Decide(actor, authz.ActionApprove, authz.FacilityRiverside)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, authz.Decide(actor, authz.ActionApprove, authz.FacilityRiverside))
	}
}

func TestFacility_Valid(t *testing.T) {
	t.Parallel()

	for _, f := range authz.Facilities() {
		assert.True(t, f.Valid())
	}
	assert.False(t, authz.Facility("lakeside").Valid())
	assert.False(t, authz.Facility("").Valid())
}
