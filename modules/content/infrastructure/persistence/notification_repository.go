package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/notification"
	"github.com/evergreen-centers/evergreen/pkg/composables"
)

const (
	insertNotificationQuery = `
		INSERT INTO notifications (recipient_id, type, title, message, related_entity_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at`

	listNotificationsQuery = `
		SELECT id, recipient_id, type, title, message, related_entity_id, read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND ($2 = false OR read = false)
		ORDER BY created_at DESC, id DESC`

	markNotificationReadQuery     = `UPDATE notifications SET read = true WHERE id = $1`
	markAllNotificationsReadQuery = `UPDATE notifications SET read = true WHERE recipient_id = $1 AND read = false`
)

type PgNotificationRepository struct{}

func NewNotificationRepository() notification.Repository {
	return &PgNotificationRepository{}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n *notification.Notification) (*notification.Notification, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var (
		id        pgtype.UUID
		read      bool
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, insertNotificationQuery,
		pgUUID(n.RecipientID),
		string(n.Type),
		n.Title,
		n.Message,
		pgUUID(n.RelatedEntityID),
	).Scan(&id, &read, &createdAt)
	if err != nil {
		return nil, err
	}

	out := *n
	out.ID = asUUID(id)
	out.Read = read
	out.CreatedAt = createdAt.Time
	return &out, nil
}

func (r *PgNotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, listNotificationsQuery, pgUUID(recipientID), unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*notification.Notification, 0)
	for rows.Next() {
		var (
			id, recipient, related pgtype.UUID
			t, title, message      string
			read                   bool
			createdAt              pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &recipient, &t, &title, &message, &related, &read, &createdAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification.Notification{
			ID:              asUUID(id),
			RecipientID:     asUUID(recipient),
			Type:            notification.Type(t),
			Title:           title,
			Message:         message,
			RelatedEntityID: asUUID(related),
			Read:            read,
			CreatedAt:       createdAt.Time,
		})
	}
	return notifications, rows.Err()
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, markNotificationReadQuery, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotFound
	}
	return nil
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, markAllNotificationsReadQuery, pgUUID(recipientID))
	return err
}
