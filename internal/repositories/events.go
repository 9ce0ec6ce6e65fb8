package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/volunteerhub/internal/models"
)

// EventRepository provides access to event records.
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return errors.Wrap(err, "failed to create event")
	}
	return nil
}

// Delete removes an event. Used as the compensation of the create-event saga.
func (r *EventRepository) Delete(ctx context.Context, id models.EventID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete event")
	}
	return nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id models.EventID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get event")
	}
	return &event, nil
}

// List returns all events, oldest first. The proximity ranker scans this
// full set on every query.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	return events, nil
}
