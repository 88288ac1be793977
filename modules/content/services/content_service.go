package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/auditlog"
	"github.com/evergreen-centers/evergreen/modules/content/domain/entities/notification"
	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/composables"
	"github.com/evergreen-centers/evergreen/pkg/eventbus"
	"github.com/evergreen-centers/evergreen/pkg/metrics"
	"github.com/evergreen-centers/evergreen/pkg/serrors"
)

const entityTypeContent = "content_item"

type ContentServiceConfig struct {
	ContentRepo      content.Repository
	AuditRepo        auditlog.Repository
	NotificationRepo notification.Repository
	Publisher        eventbus.EventBus
}

// ContentService is the single place content mutations happen. Every
// operation takes the acting identity explicitly, authorizes it first,
// validates second, and commits the state change together with its audit
// record (and notification, on terminal decisions) as one transaction.
type ContentService struct {
	contentRepo      content.Repository
	auditRepo        auditlog.Repository
	notificationRepo notification.Repository
	publisher        eventbus.EventBus
}

func NewContentService(config ContentServiceConfig) *ContentService {
	return &ContentService{
		contentRepo:      config.ContentRepo,
		auditRepo:        config.AuditRepo,
		notificationRepo: config.NotificationRepo,
		publisher:        config.Publisher,
	}
}

func (s *ContentService) GetByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (content.Content, error) {
	item, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return content.Content{}, err
	}
	if err := authz.Decide(actor, authz.ActionRead, item.Facility()).Err(); err != nil {
		return content.Content{}, err
	}
	return item, nil
}

func (s *ContentService) List(ctx context.Context, actor authz.Actor, params *content.FindParams) ([]content.Content, error) {
	if params == nil {
		params = &content.FindParams{}
	}
	if actor.Role == authz.RoleFacilityAdmin && params.Facility == "" {
		params.Facility = actor.Facility
	}
	if err := authz.Decide(actor, authz.ActionRead, params.Facility).Err(); err != nil {
		return nil, err
	}
	return s.contentRepo.List(ctx, params)
}

func (s *ContentService) Create(ctx context.Context, actor authz.Actor, dto *content.CreateDTO) (content.Content, error) {
	if dto == nil {
		return content.Content{}, errors.New("missing dto")
	}
	dto.Normalize()

	facility := authz.Facility(dto.Facility)
	if err := authz.Decide(actor, authz.ActionCreate, facility).Err(); err != nil {
		return s.fail(authz.ActionCreate, err)
	}
	if validationErrors, ok := dto.Ok(); !ok {
		return s.fail(authz.ActionCreate, validationErrors)
	}
	if !facility.Valid() {
		return s.fail(authz.ActionCreate, invalidFacilityError(dto.Facility))
	}

	item := content.New(facility, actor.ID, actor.Name, dto.Title, dto.Body, dto.Attachments)
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (content.Content, error) {
		created, err := s.contentRepo.Create(txCtx, item)
		if err != nil {
			return content.Content{}, err
		}
		changes, err := json.Marshal(map[string]any{"after": snapshot(created)})
		if err != nil {
			return content.Content{}, err
		}
		if _, err := s.auditRepo.Append(txCtx, s.newAuditLog(actor, auditlog.ActionCreate, created, changes)); err != nil {
			return content.Content{}, err
		}
		return created, nil
	})
	if err != nil {
		return s.fail(authz.ActionCreate, err)
	}

	s.accepted(authz.ActionCreate)
	s.publish(&content.CreatedEvent{Actor: actor, Item: created})
	return created, nil
}

func (s *ContentService) Edit(ctx context.Context, actor authz.Actor, id uuid.UUID, dto *content.UpdateDTO) (content.Content, error) {
	if dto == nil {
		return content.Content{}, errors.New("missing dto")
	}
	dto.Normalize()

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (content.Content, error) {
		item, err := s.contentRepo.GetByID(txCtx, id)
		if err != nil {
			return content.Content{}, err
		}
		if err := authz.Decide(actor, authz.ActionUpdate, item.Facility()).Err(); err != nil {
			return content.Content{}, err
		}
		if validationErrors, ok := dto.Ok(); !ok {
			return content.Content{}, validationErrors
		}

		next := item.WithBody(dto.Title, dto.Body, dto.Attachments)
		if dto.Facility != "" && authz.Facility(dto.Facility) != item.Facility() {
			// Scope reassignment is a corporate-only move; without this,
			// a facility admin could launder items into another scope.
			if !actor.IsCorporate() {
				return content.Content{}, authz.Deny("only corporate admins may reassign facility scope").Err()
			}
			target := authz.Facility(dto.Facility)
			if !target.Valid() {
				return content.Content{}, invalidFacilityError(dto.Facility)
			}
			next = next.WithFacility(target)
		}

		saved, err := s.contentRepo.UpdateIfStatus(txCtx, id, item.Status(), next)
		if err != nil {
			return content.Content{}, mapConflict(err)
		}
		changes, err := json.Marshal(map[string]any{
			"before": snapshot(item),
			"after":  snapshot(saved),
		})
		if err != nil {
			return content.Content{}, err
		}
		if _, err := s.auditRepo.Append(txCtx, s.newAuditLog(actor, auditlog.ActionUpdate, saved, changes)); err != nil {
			return content.Content{}, err
		}
		return saved, nil
	})
	if err != nil {
		return s.fail(authz.ActionUpdate, err)
	}

	s.accepted(authz.ActionUpdate)
	return updated, nil
}

// SubmitForApproval moves a draft into the approval gate. Corporate admins
// bypass the gate: their drafts publish directly.
func (s *ContentService) SubmitForApproval(ctx context.Context, actor authz.Actor, id uuid.UUID) (content.Content, error) {
	var published bool
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (content.Content, error) {
		item, err := s.contentRepo.GetByID(txCtx, id)
		if err != nil {
			return content.Content{}, err
		}
		if err := authz.Decide(actor, authz.ActionSubmit, item.Facility()).Err(); err != nil {
			return content.Content{}, err
		}
		if item.Status() != content.StatusDraft {
			return content.Content{}, ErrInvalidTransition
		}

		next := item.AsPending()
		if actor.IsCorporate() {
			next = item.AsPublished(time.Now().UTC())
			published = true
		}

		saved, err := s.contentRepo.UpdateIfStatus(txCtx, id, content.StatusDraft, next)
		if err != nil {
			return content.Content{}, mapConflict(err)
		}
		changes, err := statusChanges(item.Status(), saved.Status())
		if err != nil {
			return content.Content{}, err
		}
		if _, err := s.auditRepo.Append(txCtx, s.newAuditLog(actor, auditlog.ActionUpdate, saved, changes)); err != nil {
			return content.Content{}, err
		}

		if published {
			return saved, s.notifyAuthor(txCtx, saved, notification.TypeApproved)
		}
		return saved, s.notifyAuthor(txCtx, saved, notification.TypeApprovalRequested)
	})
	if err != nil {
		return s.fail(authz.ActionSubmit, err)
	}

	s.accepted(authz.ActionSubmit)
	if published {
		s.publish(&content.ApprovedEvent{Actor: actor, Item: updated})
	} else {
		s.publish(&content.SubmittedEvent{Actor: actor, Item: updated})
	}
	return updated, nil
}

func (s *ContentService) Approve(ctx context.Context, actor authz.Actor, id uuid.UUID) (content.Content, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (content.Content, error) {
		item, err := s.contentRepo.GetByID(txCtx, id)
		if err != nil {
			return content.Content{}, err
		}
		if err := authz.Decide(actor, authz.ActionApprove, item.Facility()).Err(); err != nil {
			return content.Content{}, err
		}
		if item.Status() != content.StatusPendingApproval {
			return content.Content{}, ErrInvalidTransition
		}

		saved, err := s.contentRepo.UpdateIfStatus(txCtx, id, content.StatusPendingApproval, item.AsPublished(time.Now().UTC()))
		if err != nil {
			return content.Content{}, mapConflict(err)
		}
		changes, err := statusChanges(item.Status(), saved.Status())
		if err != nil {
			return content.Content{}, err
		}
		if _, err := s.auditRepo.Append(txCtx, s.newAuditLog(actor, auditlog.ActionApprove, saved, changes)); err != nil {
			return content.Content{}, err
		}
		return saved, s.notifyAuthor(txCtx, saved, notification.TypeApproved)
	})
	if err != nil {
		return s.fail(authz.ActionApprove, err)
	}

	s.accepted(authz.ActionApprove)
	s.publish(&content.ApprovedEvent{Actor: actor, Item: updated})
	return updated, nil
}

func (s *ContentService) Reject(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (content.Content, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (content.Content, error) {
		item, err := s.contentRepo.GetByID(txCtx, id)
		if err != nil {
			return content.Content{}, err
		}
		if err := authz.Decide(actor, authz.ActionReject, item.Facility()).Err(); err != nil {
			return content.Content{}, err
		}
		if reason == "" {
			return content.Content{}, serrors.NewFieldRequiredError("reason", "Content.Fields.RejectionReason")
		}
		if item.Status() != content.StatusPendingApproval {
			return content.Content{}, ErrInvalidTransition
		}

		saved, err := s.contentRepo.UpdateIfStatus(txCtx, id, content.StatusPendingApproval, item.AsRejected(reason))
		if err != nil {
			return content.Content{}, mapConflict(err)
		}
		changes, err := json.Marshal(map[string]any{
			"status": map[string]content.Status{"from": item.Status(), "to": saved.Status()},
			"reason": reason,
		})
		if err != nil {
			return content.Content{}, err
		}
		if _, err := s.auditRepo.Append(txCtx, s.newAuditLog(actor, auditlog.ActionReject, saved, changes)); err != nil {
			return content.Content{}, err
		}
		return saved, s.notifyAuthor(txCtx, saved, notification.TypeRejected)
	})
	if err != nil {
		return s.fail(authz.ActionReject, err)
	}

	s.accepted(authz.ActionReject)
	s.publish(&content.RejectedEvent{Actor: actor, Item: updated, Reason: reason})
	return updated, nil
}

func (s *ContentService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		item, err := s.contentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := authz.Decide(actor, authz.ActionDelete, item.Facility()).Err(); err != nil {
			return err
		}
		if item.IsPublished() && !actor.IsCorporate() {
			return authz.Deny("published items can only be deleted by corporate admins").Err()
		}

		changes, err := json.Marshal(map[string]any{"before": snapshot(item)})
		if err != nil {
			return err
		}
		if _, err := s.auditRepo.Append(txCtx, s.newAuditLog(actor, auditlog.ActionDelete, item, changes)); err != nil {
			return err
		}
		return s.contentRepo.Delete(txCtx, id)
	})
	if err != nil {
		_, err = s.fail(authz.ActionDelete, err)
		return err
	}

	s.accepted(authz.ActionDelete)
	s.publish(&content.DeletedEvent{Actor: actor, ID: id})
	return nil
}

func (s *ContentService) newAuditLog(actor authz.Actor, action auditlog.Action, item content.Content, changes json.RawMessage) *auditlog.AuditLog {
	return &auditlog.AuditLog{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     action,
		EntityType: entityTypeContent,
		EntityID:   item.ID(),
		Facility:   item.Facility(),
		Changes:    changes,
	}
}

func (s *ContentService) notifyAuthor(ctx context.Context, item content.Content, t notification.Type) error {
	var title, message string
	switch t {
	case notification.TypeApprovalRequested:
		title = "Submitted for approval"
		message = fmt.Sprintf("%q is awaiting approval.", item.Title())
	case notification.TypeApproved:
		title = "Content approved"
		message = fmt.Sprintf("%q has been published.", item.Title())
	case notification.TypeRejected:
		title = "Content rejected"
		message = fmt.Sprintf("%q was rejected: %s", item.Title(), item.RejectionReason())
	}
	_, err := s.notificationRepo.Create(ctx, &notification.Notification{
		RecipientID:     item.AuthorID(),
		Type:            t,
		Title:           title,
		Message:         message,
		RelatedEntityID: item.ID(),
	})
	return err
}

func (s *ContentService) publish(event any) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

func (s *ContentService) accepted(action authz.Action) {
	metrics.RecordLifecycleDecision(string(action), metrics.OutcomeAccepted)
}

func (s *ContentService) fail(action authz.Action, err error) (content.Content, error) {
	metrics.RecordLifecycleDecision(string(action), outcomeFor(err))
	return content.Content{}, err
}

func outcomeFor(err error) string {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		switch base.Code {
		case "AUTHZ_FORBIDDEN":
			return metrics.OutcomeDenied
		case "CONTENT_INVALID_TRANSITION":
			return metrics.OutcomeInvalid
		}
	}
	var fieldErr *serrors.FieldError
	if errors.As(err, &fieldErr) {
		return metrics.OutcomeInvalid
	}
	var validationErrors serrors.ValidationErrors
	if errors.As(err, &validationErrors) {
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}

func mapConflict(err error) error {
	if errors.Is(err, content.ErrConflict) {
		return ErrInvalidTransition
	}
	return err
}

func statusChanges(from, to content.Status) (json.RawMessage, error) {
	return json.Marshal(map[string]map[string]content.Status{
		"status": {"from": from, "to": to},
	})
}

func invalidFacilityError(facility string) error {
	return &serrors.FieldError{
		BaseError: serrors.BaseError{
			Code:      "FIELD_INVALID",
			Message:   fmt.Sprintf("unknown facility %q", facility),
			LocaleKey: "Content.Fields.Facility",
		},
		Field: "Facility",
	}
}
