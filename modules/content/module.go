package content

import (
	"embed"

	"github.com/sirupsen/logrus"

	contentaggregate "github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
	"github.com/evergreen-centers/evergreen/modules/content/infrastructure/persistence"
	"github.com/evergreen-centers/evergreen/modules/content/services"
	"github.com/evergreen-centers/evergreen/pkg/application"
	"github.com/evergreen-centers/evergreen/pkg/eventbus"
)

//go:embed infrastructure/persistence/schema/content-schema.sql
var migrationFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "content"
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	auditRepo := persistence.NewAuditLogRepository()
	notificationRepo := persistence.NewNotificationRepository()

	app.RegisterServices(
		services.NewContentService(services.ContentServiceConfig{
			ContentRepo:      persistence.NewContentRepository(),
			AuditRepo:        auditRepo,
			NotificationRepo: notificationRepo,
			Publisher:        app.EventPublisher(),
		}),
		services.NewAuditLogService(auditRepo),
		services.NewNotificationService(notificationRepo),
	)

	registerEventLogging(app.EventPublisher(), app.Logger())
	return nil
}

// registerEventLogging keeps an operational trace of lifecycle transitions.
// The audit trail is the durable record; these log lines are observational.
func registerEventLogging(bus eventbus.EventBus, log *logrus.Logger) {
	bus.Subscribe(func(e *contentaggregate.CreatedEvent) {
		log.WithFields(logrus.Fields{
			"content_id": e.Item.ID(),
			"facility":   e.Item.Facility(),
			"actor":      e.Actor.ID,
		}).Info("content created")
	})
	bus.Subscribe(func(e *contentaggregate.SubmittedEvent) {
		log.WithFields(logrus.Fields{
			"content_id": e.Item.ID(),
			"facility":   e.Item.Facility(),
			"actor":      e.Actor.ID,
		}).Info("content submitted for approval")
	})
	bus.Subscribe(func(e *contentaggregate.ApprovedEvent) {
		log.WithFields(logrus.Fields{
			"content_id": e.Item.ID(),
			"facility":   e.Item.Facility(),
			"actor":      e.Actor.ID,
		}).Info("content published")
	})
	bus.Subscribe(func(e *contentaggregate.RejectedEvent) {
		log.WithFields(logrus.Fields{
			"content_id": e.Item.ID(),
			"facility":   e.Item.Facility(),
			"actor":      e.Actor.ID,
			"reason":     e.Reason,
		}).Info("content rejected")
	})
	bus.Subscribe(func(e *contentaggregate.DeletedEvent) {
		log.WithFields(logrus.Fields{
			"content_id": e.ID,
			"actor":      e.Actor.ID,
		}).Info("content deleted")
	})
}
