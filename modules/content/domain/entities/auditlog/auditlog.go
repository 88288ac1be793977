package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/pkg/authz"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// AuditLog is one append-only record of an accepted mutation. ActorName is
// denormalized at write time so the record keeps the display name as of the
// action even if the actor is later renamed. Records are never updated or
// deleted; the Repository exposes no such operations.
type AuditLog struct {
	ID         uuid.UUID
	ActorID    uuid.UUID
	ActorName  string
	Action     Action
	EntityType string
	EntityID   uuid.UUID
	Facility   authz.Facility
	Changes    json.RawMessage
	CreatedAt  time.Time
}

type Filter struct {
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Facility   authz.Facility
	Limit      int
}

type Repository interface {
	// Append writes the record within the caller's transaction. A failed
	// append must fail the whole transaction; audit writes are never best
	// effort.
	Append(ctx context.Context, log *AuditLog) (*AuditLog, error)
	// List returns matching records newest-first.
	List(ctx context.Context, filter Filter) ([]*AuditLog, error)
}
