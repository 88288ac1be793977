package services

import "github.com/evergreen-centers/evergreen/pkg/serrors"

// ErrInvalidTransition is returned when an operation is requested on an item
// whose current status does not allow it. It is also what a losing
// concurrent writer sees: the conditional update reports a conflict, which
// means the expected pre-state no longer holds.
var ErrInvalidTransition = serrors.NewError(
	"CONTENT_INVALID_TRANSITION",
	"operation not allowed in the item's current status",
	"Content.Errors.InvalidTransition",
)
