package repository

import (
	"context"
	"errors"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// EventRepository persists events under events/.
type EventRepository struct {
	store treestore.Store
}

// NewEventRepository constructs the repository.
func NewEventRepository(store treestore.Store) *EventRepository {
	return &EventRepository{store: store}
}

// Get returns the event with id.
func (r *EventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.store.Get(ctx, eventPath(id), &event); err != nil {
		return nil, storeError(err, "event")
	}
	if event.ID == "" {
		event.ID = id
	}
	return &event, nil
}

// List returns every stored event in no particular order.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	var all map[string]models.Event
	if err := r.store.Get(ctx, EventsRoot, &all); err != nil {
		if errors.Is(err, treestore.ErrNotFound) {
			return []models.Event{}, nil
		}
		return nil, storeError(err, "events")
	}
	events := make([]models.Event, 0, len(all))
	for id, event := range all {
		if event.ID == "" {
			event.ID = id
		}
		events = append(events, event)
	}
	return events, nil
}

// Exists reports whether an event with id is stored.
func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, eventPath(id))
	return ok, storeError(err, "event")
}

// Put overwrites the event record.
func (r *EventRepository) Put(ctx context.Context, event models.Event) error {
	return storeError(r.store.Set(ctx, eventPath(event.ID), event), "event")
}

// Update merges top-level fields into the event record.
func (r *EventRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return storeError(r.store.Update(ctx, eventPath(id), fields), "event")
}

// Delete removes the event record.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return storeError(r.store.Remove(ctx, eventPath(id)), "event")
}
