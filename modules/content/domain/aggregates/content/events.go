package content

import (
	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/pkg/authz"
)

// Lifecycle events published on the event bus after a transition commits.
// They are observational; the durable audit trail is written inside the
// transaction, not from these.

type CreatedEvent struct {
	Actor authz.Actor
	Item  Content
}

type SubmittedEvent struct {
	Actor authz.Actor
	Item  Content
}

type ApprovedEvent struct {
	Actor authz.Actor
	Item  Content
}

type RejectedEvent struct {
	Actor  authz.Actor
	Item   Content
	Reason string
}

type DeletedEvent struct {
	Actor authz.Actor
	ID    uuid.UUID
}
