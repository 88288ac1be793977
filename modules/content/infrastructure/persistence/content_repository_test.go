package persistence_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmodule "github.com/evergreen-centers/evergreen/modules/content"
	"github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/auditlog"
	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/notification"
	"github.com/evergreen-centers/evergreen/modules/content/infrastructure/persistence"
	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/itf"
)

func newDraft(authorID uuid.UUID) content.Content {
	return content.New(
		authz.FacilityNorthgate,
		authorID,
		"Miguel Torres",
		"Pool hours",
		"The pool closes early on Fridays.",
		[]string{"pool-hours.pdf"},
	)
}

func TestPgContentRepository_CRUD(t *testing.T) {
	env := itf.Setup(t, contentmodule.NewModule())
	repo := persistence.NewContentRepository()

	item := newDraft(uuid.New())
	created, err := repo.Create(env.Ctx, item)
	require.NoError(t, err)
	assert.Equal(t, item.ID(), created.ID())
	assert.Equal(t, content.StatusDraft, created.Status())
	assert.False(t, created.CreatedAt().IsZero())
	assert.Equal(t, []string{"pool-hours.pdf"}, created.Attachments())

	got, err := repo.GetByID(env.Ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, created.Title(), got.Title())

	_, err = repo.GetByID(env.Ctx, uuid.New())
	require.ErrorIs(t, err, content.ErrNotFound)

	require.NoError(t, repo.Delete(env.Ctx, created.ID()))
	require.ErrorIs(t, repo.Delete(env.Ctx, created.ID()), content.ErrNotFound)
}

func TestPgContentRepository_UpdateIfStatus(t *testing.T) {
	env := itf.Setup(t, contentmodule.NewModule())
	repo := persistence.NewContentRepository()

	created, err := repo.Create(env.Ctx, newDraft(uuid.New()))
	require.NoError(t, err)

	pending, err := repo.UpdateIfStatus(env.Ctx, created.ID(), content.StatusDraft, created.AsPending())
	require.NoError(t, err)
	assert.Equal(t, content.StatusPendingApproval, pending.Status())

	// The row is no longer a draft, so a second writer holding the old
	// state loses.
	_, err = repo.UpdateIfStatus(env.Ctx, created.ID(), content.StatusDraft, created.AsPending())
	require.ErrorIs(t, err, content.ErrConflict)
}

func TestPgContentRepository_List(t *testing.T) {
	env := itf.Setup(t, contentmodule.NewModule())
	repo := persistence.NewContentRepository()
	authorID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(env.Ctx, newDraft(authorID))
		require.NoError(t, err)
	}
	_, err := repo.Create(env.Ctx, content.New(
		authz.FacilityRiverside, uuid.New(), "Dana Reyes", "Other facility", "body", nil,
	))
	require.NoError(t, err)

	items, err := repo.List(env.Ctx, &content.FindParams{Facility: authz.FacilityNorthgate})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = repo.List(env.Ctx, &content.FindParams{AuthorID: authorID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPgAuditLogRepository_AppendAndList(t *testing.T) {
	env := itf.Setup(t, contentmodule.NewModule())
	repo := persistence.NewAuditLogRepository()
	entityID := uuid.New()

	appended, err := repo.Append(env.Ctx, &auditlog.AuditLog{
		ActorID:    uuid.New(),
		ActorName:  "Dana Reyes",
		Action:     auditlog.ActionCreate,
		EntityType: "content_item",
		EntityID:   entityID,
		Facility:   authz.FacilityNorthgate,
		Changes:    []byte(`{"after":{"status":"draft"}}`),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, appended.ID)
	assert.False(t, appended.CreatedAt.IsZero())

	logs, err := repo.List(env.Ctx, auditlog.Filter{EntityType: "content_item", EntityID: entityID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, auditlog.ActionCreate, logs[0].Action)
	assert.JSONEq(t, `{"after":{"status":"draft"}}`, string(logs[0].Changes))
}

func TestPgNotificationRepository_Flow(t *testing.T) {
	env := itf.Setup(t, contentmodule.NewModule())
	repo := persistence.NewNotificationRepository()
	recipient := uuid.New()

	first, err := repo.Create(env.Ctx, &notification.Notification{
		RecipientID:     recipient,
		Type:            notification.TypeApprovalRequested,
		Title:           "Submitted for approval",
		Message:         "waiting",
		RelatedEntityID: uuid.New(),
	})
	require.NoError(t, err)
	_, err = repo.Create(env.Ctx, &notification.Notification{
		RecipientID:     recipient,
		Type:            notification.TypeApproved,
		Title:           "Content approved",
		Message:         "done",
		RelatedEntityID: uuid.New(),
	})
	require.NoError(t, err)

	unread, err := repo.ListByRecipient(env.Ctx, recipient, true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	require.NoError(t, repo.MarkRead(env.Ctx, first.ID))
	unread, err = repo.ListByRecipient(env.Ctx, recipient, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, repo.MarkAllRead(env.Ctx, recipient))
	unread, err = repo.ListByRecipient(env.Ctx, recipient, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	require.ErrorIs(t, repo.MarkRead(env.Ctx, uuid.New()), notification.ErrNotFound)
}
