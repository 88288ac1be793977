package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/notification"
)

// InMemNotificationRepository stores notifications by value; callers only
// ever see copies, so reads and read-flag updates never share memory.
type InMemNotificationRepository struct {
	notifications *safeMap[uuid.UUID, notification.Notification]
}

func NewInMemNotificationRepository() *InMemNotificationRepository {
	return &InMemNotificationRepository{notifications: newSafeMap[uuid.UUID, notification.Notification]()}
}

func (r *InMemNotificationRepository) Create(_ context.Context, n *notification.Notification) (*notification.Notification, error) {
	stored := *n
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.notifications.Set(stored.ID, stored)

	out := stored
	return &out, nil
}

func (r *InMemNotificationRepository) ListByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	notifications := make([]*notification.Notification, 0)
	for _, n := range r.notifications.Values() {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		entry := n
		notifications = append(notifications, &entry)
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *InMemNotificationRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	n, ok := r.notifications.Get(id)
	if !ok {
		return notification.ErrNotFound
	}
	n.Read = true
	r.notifications.Set(id, n)
	return nil
}

func (r *InMemNotificationRepository) MarkAllRead(_ context.Context, recipientID uuid.UUID) error {
	for _, n := range r.notifications.Values() {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			r.notifications.Set(n.ID, n)
		}
	}
	return nil
}
