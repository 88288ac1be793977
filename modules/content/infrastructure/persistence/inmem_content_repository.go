package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evergreen-centers/evergreen/modules/content/domain/aggregates/content"
)

// InMemContentRepository mirrors the Postgres repository's observable
// behavior, including the conditional-update conflict semantics, so the
// lifecycle can be unit tested without a database.
type InMemContentRepository struct {
	mu    sync.Mutex
	items *safeMap[uuid.UUID, content.Content]
}

func NewInMemContentRepository() *InMemContentRepository {
	return &InMemContentRepository{items: newSafeMap[uuid.UUID, content.Content]()}
}

func (r *InMemContentRepository) GetByID(_ context.Context, id uuid.UUID) (content.Content, error) {
	item, ok := r.items.Get(id)
	if !ok {
		return content.Content{}, content.ErrNotFound
	}
	return item, nil
}

func (r *InMemContentRepository) Create(_ context.Context, item content.Content) (content.Content, error) {
	now := time.Now().UTC()
	stored := content.Hydrate(
		item.ID(),
		item.Facility(),
		item.Status(),
		item.AuthorID(),
		item.AuthorName(),
		item.Title(),
		item.Body(),
		item.Attachments(),
		item.RejectionReason(),
		now,
		now,
		item.PublishedAt(),
	)
	r.items.Set(stored.ID(), stored)
	return stored, nil
}

func (r *InMemContentRepository) UpdateIfStatus(_ context.Context, id uuid.UUID, expected content.Status, item content.Content) (content.Content, error) {
	// Get-compare-set has to be atomic here to keep parity with the SQL
	// UPDATE ... WHERE status predicate.
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items.Get(id)
	if !ok || current.Status() != expected {
		return content.Content{}, content.ErrConflict
	}
	stored := content.Hydrate(
		id,
		item.Facility(),
		item.Status(),
		current.AuthorID(),
		current.AuthorName(),
		item.Title(),
		item.Body(),
		item.Attachments(),
		item.RejectionReason(),
		current.CreatedAt(),
		time.Now().UTC(),
		item.PublishedAt(),
	)
	r.items.Set(id, stored)
	return stored, nil
}

func (r *InMemContentRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.items.Delete(id) {
		return content.ErrNotFound
	}
	return nil
}

func (r *InMemContentRepository) List(_ context.Context, params *content.FindParams) ([]content.Content, error) {
	items := make([]content.Content, 0)
	for _, item := range r.items.Values() {
		if params.Facility != "" && item.Facility() != params.Facility {
			continue
		}
		if params.Status != "" && item.Status() != params.Status {
			continue
		}
		if params.AuthorID != uuid.Nil && item.AuthorID() != params.AuthorID {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt().Equal(items[j].CreatedAt()) {
			return items[i].CreatedAt().After(items[j].CreatedAt())
		}
		return items[i].ID().String() > items[j].ID().String()
	})
	if params.Offset > 0 {
		if params.Offset >= len(items) {
			return []content.Content{}, nil
		}
		items = items[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(items) {
		items = items[:params.Limit]
	}
	return items, nil
}
