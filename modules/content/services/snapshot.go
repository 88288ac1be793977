package services

import (
	"time"

	"github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
	"github.com/evergreen-centers/evergreen/pkg/authz"
)

// contentSnapshot is the audit-facing view of an item. The body is omitted
// on purpose; audit records capture lifecycle facts, not full revisions.
type contentSnapshot struct {
	Status      content.Status `json:"status"`
	Facility    authz.Facility `json:"facility"`
	Title       string         `json:"title"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
}

func snapshot(item content.Content) contentSnapshot {
	return contentSnapshot{
		Status:      item.Status(),
		Facility:    item.Facility(),
		Title:       item.Title(),
		PublishedAt: item.PublishedAt(),
	}
}
