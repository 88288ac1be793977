package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeApprovalRequested Type = "approval_requested"
	TypeApproved          Type = "approved"
	TypeRejected          Type = "rejected"
)

// Notification is an in-app message to a content author. At most one is
// created per terminal decision on an entity; the lifecycle's invalid
// transition guard, not this package, enforces that.
type Notification struct {
	ID              uuid.UUID
	RecipientID     uuid.UUID
	Type            Type
	Title           string
	Message         string
	RelatedEntityID uuid.UUID
	Read            bool
	CreatedAt       time.Time
}

type Repository interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}
