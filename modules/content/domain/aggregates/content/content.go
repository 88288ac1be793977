package content

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/pkg/authz"
)

var (
	ErrNotFound = errors.New("content item not found")
	// ErrConflict means a conditional update found the item in a different
	// status than expected; a concurrent writer got there first.
	ErrConflict = errors.New("content item status changed concurrently")
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusPublished       Status = "published"
	StatusRejected        Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Content is a facility-scoped content item moving through the approval
// lifecycle. Author and id are immutable after creation; all mutators return
// an updated copy.
type Content struct {
	id              uuid.UUID
	facility        authz.Facility
	status          Status
	authorID        uuid.UUID
	authorName      string
	title           string
	body            string
	attachments     []string
	rejectionReason string
	createdAt       time.Time
	updatedAt       time.Time
	publishedAt     *time.Time
}

func New(facility authz.Facility, authorID uuid.UUID, authorName, title, body string, attachments []string) Content {
	return Content{
		id:          uuid.New(),
		facility:    facility,
		status:      StatusDraft,
		authorID:    authorID,
		authorName:  strings.TrimSpace(authorName),
		title:       strings.TrimSpace(title),
		body:        body,
		attachments: attachments,
	}
}

func Hydrate(
	id uuid.UUID,
	facility authz.Facility,
	status Status,
	authorID uuid.UUID,
	authorName string,
	title string,
	body string,
	attachments []string,
	rejectionReason string,
	createdAt time.Time,
	updatedAt time.Time,
	publishedAt *time.Time,
) Content {
	return Content{
		id:              id,
		facility:        facility,
		status:          status,
		authorID:        authorID,
		authorName:      authorName,
		title:           title,
		body:            body,
		attachments:     attachments,
		rejectionReason: rejectionReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		publishedAt:     publishedAt,
	}
}

func (c Content) ID() uuid.UUID            { return c.id }
func (c Content) Facility() authz.Facility { return c.facility }
func (c Content) Status() Status           { return c.status }
func (c Content) AuthorID() uuid.UUID      { return c.authorID }
func (c Content) AuthorName() string       { return c.authorName }
func (c Content) Title() string            { return c.title }
func (c Content) Body() string             { return c.body }
func (c Content) Attachments() []string    { return c.attachments }
func (c Content) RejectionReason() string  { return c.rejectionReason }
func (c Content) CreatedAt() time.Time     { return c.createdAt }
func (c Content) UpdatedAt() time.Time     { return c.updatedAt }
func (c Content) PublishedAt() *time.Time  { return c.publishedAt }
func (c Content) IsPublished() bool        { return c.status == StatusPublished }
func (c Content) IsZero() bool             { return c.id == uuid.Nil }

// WithBody replaces the editable fields and resets the item to draft.
// A previously published or rejected item loses its publishedAt and
// rejection reason: editing always re-enters the approval gate.
func (c Content) WithBody(title, body string, attachments []string) Content {
	c.title = strings.TrimSpace(title)
	c.body = body
	c.attachments = attachments
	c.status = StatusDraft
	c.publishedAt = nil
	c.rejectionReason = ""
	return c
}

// WithFacility reassigns the facility scope. Callers must gate this on a
// corporate actor; facility-scoped actors cannot move items between scopes.
func (c Content) WithFacility(facility authz.Facility) Content {
	c.facility = facility
	return c
}

func (c Content) AsPending() Content {
	c.status = StatusPendingApproval
	return c
}

func (c Content) AsPublished(at time.Time) Content {
	c.status = StatusPublished
	c.publishedAt = &at
	c.rejectionReason = ""
	return c
}

func (c Content) AsRejected(reason string) Content {
	c.status = StatusRejected
	c.rejectionReason = reason
	c.publishedAt = nil
	return c
}
