package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/auditlog"
	"github.com/evergreen-centers/evergreen/pkg/authz"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditLogService is the read surface over the audit trail. Writes happen
// only inside lifecycle transactions; this service cannot append.
type AuditLogService struct {
	repo auditlog.Repository
}

func NewAuditLogService(repo auditlog.Repository) *AuditLogService {
	return &AuditLogService{repo: repo}
}

func (s *AuditLogService) List(ctx context.Context, actor authz.Actor, filter auditlog.Filter) ([]*auditlog.AuditLog, error) {
	if actor.Role == authz.RoleFacilityAdmin && filter.Facility == "" {
		filter.Facility = actor.Facility
	}
	if err := authz.Decide(actor, authz.ActionRead, filter.Facility).Err(); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLimit
	}
	if filter.Limit > maxAuditLimit {
		filter.Limit = maxAuditLimit
	}
	return s.repo.List(ctx, filter)
}

func (s *AuditLogService) ListForEntity(ctx context.Context, actor authz.Actor, entityID uuid.UUID) ([]*auditlog.AuditLog, error) {
	return s.List(ctx, actor, auditlog.Filter{
		EntityType: entityTypeContent,
		EntityID:   entityID,
	})
}

// CountFor reports how many audit records exist for one entity. Every
// accepted mutation contributes exactly one record, so this doubles as the
// entity's mutation count. Unlike List it applies no limit clamp; a count
// must see the whole trail.
func (s *AuditLogService) CountFor(ctx context.Context, actor authz.Actor, entityID uuid.UUID) (int, error) {
	filter := auditlog.Filter{
		EntityType: entityTypeContent,
		EntityID:   entityID,
	}
	if actor.Role == authz.RoleFacilityAdmin {
		filter.Facility = actor.Facility
	}
	if err := authz.Decide(actor, authz.ActionRead, filter.Facility).Err(); err != nil {
		return 0, err
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(logs), nil
}
