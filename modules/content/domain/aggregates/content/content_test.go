package content_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
	"github.com/evergreen-centers/evergreen/pkg/authz"
)

func TestNew_StartsAsDraft(t *testing.T) {
	t.Parallel()

	authorID := uuid.New()
	item := content.New(authz.FacilityNorthgate, authorID, "Miguel Torres", "  Pool hours  ", "body", nil)

	assert.Equal(t, content.StatusDraft, item.Status())
	assert.Equal(t, authorID, item.AuthorID())
	assert.Equal(t, "Pool hours", item.Title())
	assert.NotEqual(t, uuid.Nil, item.ID())
	assert.Nil(t, item.PublishedAt())
}

func TestContent_WithBody_ResetsLifecycle(t *testing.T) {
	t.Parallel()

	item := content.New(authz.FacilityNorthgate, uuid.New(), "Miguel Torres", "Pool hours", "body", nil)
	published := item.AsPending().AsPublished(time.Now().UTC())
	require.NotNil(t, published.PublishedAt())

	edited := published.WithBody("Pool hours v2", "new body", nil)
	assert.Equal(t, content.StatusDraft, edited.Status())
	assert.Nil(t, edited.PublishedAt())
	assert.Empty(t, edited.RejectionReason())

	rejected := item.AsPending().AsRejected("not yet")
	edited = rejected.WithBody("Pool hours v3", "new body", nil)
	assert.Equal(t, content.StatusDraft, edited.Status())
	assert.Empty(t, edited.RejectionReason())
}

func TestContent_MutatorsReturnCopies(t *testing.T) {
	t.Parallel()

	item := content.New(authz.FacilityNorthgate, uuid.New(), "Miguel Torres", "Pool hours", "body", nil)
	_ = item.AsPending()

	assert.Equal(t, content.StatusDraft, item.Status())
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []content.Status{
		content.StatusDraft,
		content.StatusPendingApproval,
		content.StatusPublished,
		content.StatusRejected,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, content.Status("archived").Valid())
}

func TestCreateDTO_Ok(t *testing.T) {
	t.Parallel()

	dto := &content.CreateDTO{Facility: " Northgate ", Title: "Pool hours", Body: "body"}
	dto.Normalize()
	assert.Equal(t, "northgate", dto.Facility)

	_, ok := dto.Ok()
	assert.True(t, ok)

	missing := &content.CreateDTO{Facility: "northgate"}
	errs, ok := missing.Ok()
	require.False(t, ok)
	assert.Contains(t, errs, "Title")
	assert.Contains(t, errs, "Body")
}
