package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/pkg/authz"
)

type FindParams struct {
	Facility authz.Facility
	Status   Status
	AuthorID uuid.UUID
	Limit    int
	Offset   int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Content, error)
	Create(ctx context.Context, item Content) (Content, error)
	// UpdateIfStatus applies item only if the stored row is still in the
	// expected status; otherwise it returns ErrConflict. This is the
	// serialization primitive for concurrent lifecycle transitions.
	UpdateIfStatus(ctx context.Context, id uuid.UUID, expected Status, item Content) (Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *FindParams) ([]Content, error)
}
