package permissions

import "github.com/evergreen-centers/evergreen/pkg/authz"

const ResourceContent = "content"

// Actions the content resource understands, in the order the policy
// evaluates them. Kept as a catalog so outer layers can enumerate what may
// be requested without importing the lifecycle.
var Actions = []authz.Action{
	authz.ActionCreate,
	authz.ActionRead,
	authz.ActionUpdate,
	authz.ActionSubmit,
	authz.ActionApprove,
	authz.ActionReject,
	authz.ActionDelete,
}
