package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/notification"
)

// NotificationService exposes each recipient's own inbox. Creation is not
// offered here; notifications exist only as a side effect of lifecycle
// transitions and are written in the same transaction.
type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records a notification. Callers inside a lifecycle transaction get
// the same atomicity as the state change itself.
func (s *NotificationService) Notify(ctx context.Context, n *notification.Notification) (*notification.Notification, error) {
	return s.repo.Create(ctx, n)
}

func (s *NotificationService) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}
