package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/composables"
)

const contentColumns = `id, facility, status, author_id, author_name, title, body, attachments, rejection_reason, created_at, updated_at, published_at`

const (
	selectContentByIDQuery = `SELECT ` + contentColumns + ` FROM content_items WHERE id = $1`

	insertContentQuery = `
		INSERT INTO content_items (
			id, facility, status, author_id, author_name, title, body, attachments, rejection_reason, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + contentColumns

	// The status predicate is the concurrency control: of two racing
	// transitions, only the one that still sees the expected status
	// updates a row.
	updateContentIfStatusQuery = `
		UPDATE content_items SET
			facility = $3,
			status = $4,
			title = $5,
			body = $6,
			attachments = $7,
			rejection_reason = $8,
			published_at = $9,
			updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING ` + contentColumns

	deleteContentQuery = `DELETE FROM content_items WHERE id = $1`
)

type PgContentRepository struct{}

func NewContentRepository() content.Repository {
	return &PgContentRepository{}
}

func (r *PgContentRepository) GetByID(ctx context.Context, id uuid.UUID) (content.Content, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return content.Content{}, err
	}
	return scanContent(tx.QueryRow(ctx, selectContentByIDQuery, pgUUID(id)))
}

func (r *PgContentRepository) Create(ctx context.Context, item content.Content) (content.Content, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return content.Content{}, err
	}
	row := tx.QueryRow(ctx, insertContentQuery,
		pgUUID(item.ID()),
		string(item.Facility()),
		string(item.Status()),
		pgUUID(item.AuthorID()),
		item.AuthorName(),
		item.Title(),
		item.Body(),
		item.Attachments(),
		item.RejectionReason(),
		pgTimePtr(item.PublishedAt()),
	)
	return scanContent(row)
}

func (r *PgContentRepository) UpdateIfStatus(ctx context.Context, id uuid.UUID, expected content.Status, item content.Content) (content.Content, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return content.Content{}, err
	}
	row := tx.QueryRow(ctx, updateContentIfStatusQuery,
		pgUUID(id),
		string(expected),
		string(item.Facility()),
		string(item.Status()),
		item.Title(),
		item.Body(),
		item.Attachments(),
		item.RejectionReason(),
		pgTimePtr(item.PublishedAt()),
	)
	updated, err := scanContent(row)
	if errors.Is(err, content.ErrNotFound) {
		return content.Content{}, content.ErrConflict
	}
	return updated, err
}

func (r *PgContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteContentQuery, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (r *PgContentRepository) List(ctx context.Context, params *content.FindParams) ([]content.Content, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := []string{"1 = 1"}, []any{}
	if params.Facility != "" {
		args = append(args, string(params.Facility))
		where = append(where, fmt.Sprintf("facility = $%d", len(args)))
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.AuthorID != uuid.Nil {
		args = append(args, pgUUID(params.AuthorID))
		where = append(where, fmt.Sprintf("author_id = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`SELECT %s FROM content_items WHERE %s ORDER BY created_at DESC, id DESC`,
		contentColumns,
		strings.Join(where, " AND "),
	)
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]content.Content, 0)
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanContent(row pgx.Row) (content.Content, error) {
	var (
		id, authorID                                      pgtype.UUID
		facility, status, authorName, title, body, reason string
		attachments                                       []string
		createdAt, updatedAt, publishedAt                 pgtype.Timestamptz
	)
	err := row.Scan(
		&id,
		&facility,
		&status,
		&authorID,
		&authorName,
		&title,
		&body,
		&attachments,
		&reason,
		&createdAt,
		&updatedAt,
		&publishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return content.Content{}, content.ErrNotFound
	}
	if err != nil {
		return content.Content{}, err
	}
	return content.Hydrate(
		asUUID(id),
		authz.Facility(facility),
		content.Status(status),
		asUUID(authorID),
		authorName,
		title,
		body,
		attachments,
		reason,
		createdAt.Time,
		updatedAt.Time,
		asTimePtr(publishedAt),
	), nil
}
