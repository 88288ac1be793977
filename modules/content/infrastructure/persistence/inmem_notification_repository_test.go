package persistence_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/notification"
	"github.com/evergreen-centers/evergreen/modules/content/infrastructure/persistence"
)

func TestInMemNotificationRepository_ConcurrentReadsAndWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := persistence.NewInMemNotificationRepository()
	recipient := uuid.New()

	ids := make([]uuid.UUID, 0, 20)
	for i := 0; i < 20; i++ {
		n, err := repo.Create(ctx, &notification.Notification{
			RecipientID:     recipient,
			Type:            notification.TypeApproved,
			Title:           "Content approved",
			RelatedEntityID: uuid.New(),
		})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		id := id
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.MarkRead(ctx, id))
		}()
		go func() {
			defer wg.Done()
			_, err := repo.ListByRecipient(ctx, recipient, true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	unread, err := repo.ListByRecipient(ctx, recipient, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
