package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/auditlog"
)

type InMemAuditLogRepository struct {
	mu   sync.RWMutex
	logs []*auditlog.AuditLog
}

func NewInMemAuditLogRepository() *InMemAuditLogRepository {
	return &InMemAuditLogRepository{}
}

func (r *InMemAuditLogRepository) Append(_ context.Context, log *auditlog.AuditLog) (*auditlog.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *log
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	r.logs = append(r.logs, &stored)

	out := stored
	return &out, nil
}

func (r *InMemAuditLogRepository) List(_ context.Context, filter auditlog.Filter) ([]*auditlog.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Walk backwards so records with identical timestamps still come out
	// newest-first after the stable sort.
	logs := make([]*auditlog.AuditLog, 0)
	for i := len(r.logs) - 1; i >= 0; i-- {
		log := r.logs[i]
		if filter.EntityType != "" && log.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != uuid.Nil && log.EntityID != filter.EntityID {
			continue
		}
		if filter.ActorID != uuid.Nil && log.ActorID != filter.ActorID {
			continue
		}
		if filter.Facility != "" && log.Facility != filter.Facility {
			continue
		}
		entry := *log
		logs = append(logs, &entry)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	if filter.Limit > 0 && filter.Limit < len(logs) {
		logs = logs[:filter.Limit]
	}
	return logs, nil
}
