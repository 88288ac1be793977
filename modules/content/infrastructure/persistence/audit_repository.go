package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/auditlog"
	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/composables"
)

const auditColumns = `id, actor_id, actor_name, action, entity_type, entity_id, facility, changes, created_at`

// Insert is the only write this repository performs. There is deliberately
// no UPDATE or DELETE statement in this file.
const insertAuditLogQuery = `
	INSERT INTO content_audit_logs (actor_id, actor_name, action, entity_type, entity_id, facility, changes)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at`

type PgAuditLogRepository struct{}

func NewAuditLogRepository() auditlog.Repository {
	return &PgAuditLogRepository{}
}

func (r *PgAuditLogRepository) Append(ctx context.Context, log *auditlog.AuditLog) (*auditlog.AuditLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	changes := log.Changes
	if len(changes) == 0 {
		changes = []byte("{}")
	}
	var (
		id        pgtype.UUID
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx, insertAuditLogQuery,
		pgUUID(log.ActorID),
		log.ActorName,
		string(log.Action),
		log.EntityType,
		pgUUID(log.EntityID),
		string(log.Facility),
		[]byte(changes),
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}

	out := *log
	out.ID = asUUID(id)
	out.CreatedAt = createdAt.Time
	return &out, nil
}

func (r *PgAuditLogRepository) List(ctx context.Context, filter auditlog.Filter) ([]*auditlog.AuditLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := []string{"1 = 1"}, []any{}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if filter.EntityID != uuid.Nil {
		args = append(args, pgUUID(filter.EntityID))
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if filter.ActorID != uuid.Nil {
		args = append(args, pgUUID(filter.ActorID))
		where = append(where, fmt.Sprintf("actor_id = $%d", len(args)))
	}
	if filter.Facility != "" {
		args = append(args, string(filter.Facility))
		where = append(where, fmt.Sprintf("facility = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`SELECT %s FROM content_audit_logs WHERE %s ORDER BY created_at DESC, id DESC`,
		auditColumns,
		strings.Join(where, " AND "),
	)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*auditlog.AuditLog, 0)
	for rows.Next() {
		var (
			id, actorID          pgtype.UUID
			entityID             pgtype.UUID
			actorName, action    string
			entityType, facility string
			changes              []byte
			createdAt            pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &actorID, &actorName, &action, &entityType, &entityID, &facility, &changes, &createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, &auditlog.AuditLog{
			ID:         asUUID(id),
			ActorID:    asUUID(actorID),
			ActorName:  actorName,
			Action:     auditlog.Action(action),
			EntityType: entityType,
			EntityID:   asUUID(entityID),
			Facility:   authz.Facility(facility),
			Changes:    changes,
			CreatedAt:  createdAt.Time,
		})
	}
	return logs, rows.Err()
}
