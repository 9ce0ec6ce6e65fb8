package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/cache"
	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
	"example.com/volunteerhub/internal/saga"
	"example.com/volunteerhub/internal/search"
)

// eventsCacheTTL bounds staleness of the cached full event list. Writes
// invalidate it eagerly; the TTL is the backstop.
const eventsCacheTTL = 30 * time.Second

// EventService creates, lists, and searches events. Creation is a saga: the
// event row and the organization's created-events entry live in separately
// owned tables.
type EventService struct {
	events   EventStore
	orgs     OrganizationStore
	cache    Cache
	search   *search.ElasticClient
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// NewEventService creates a new event service
func NewEventService(events EventStore, orgs OrganizationStore, c Cache, es *search.ElasticClient, m *metrics.Metrics) *EventService {
	return &EventService{
		events:   events,
		orgs:     orgs,
		cache:    c,
		search:   es,
		metrics:  m,
		validate: validator.New(),
	}
}

// CreateEvent creates an event on behalf of an organization and links it
// into the organization's created-events list. If the link fails the event
// row is removed again.
func (s *EventService) CreateEvent(ctx context.Context, orgID models.OrganizationID, req models.CreateEventRequest) (*models.Event, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("Invalid event payload: " + err.Error())
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, validationError("Both lat and lng must be provided together")
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		return nil, validationError("Date must be formatted as YYYY-MM-DD")
	}

	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Organization not found")
		}
		return nil, persistenceError("Failed to load organization", err)
	}

	event := &models.Event{
		ID:             models.NewEventID(),
		Name:           req.Name,
		Description:    req.Description,
		Date:           req.Date,
		Address:        req.Address,
		Lat:            req.Lat,
		Lng:            req.Lng,
		OrganizationID: orgID,
	}

	var sagaErr error
	steps := []saga.Step{
		{
			Name: "insert-event",
			Run: func(ctx context.Context) error {
				if err := s.events.Create(ctx, event); err != nil {
					sagaErr = err
					return err
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.events.Delete(ctx, event.ID)
			},
		},
		{
			Name: "append-organization-event",
			Run: func(ctx context.Context) error {
				if err := s.orgs.AppendEvent(ctx, orgID, event.Summary()); err != nil {
					sagaErr = err
					return err
				}
				return nil
			},
		},
	}

	if err := saga.Run(ctx, "create-event", steps); err != nil {
		return nil, persistenceError("Failed to create event", sagaErr)
	}

	// Cache invalidation and indexing are best-effort: the event exists
	// either way.
	if err := s.cache.Delete(ctx, cache.EventsCacheKey()); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate events cache")
	}
	if s.search.Enabled() {
		if err := s.search.IndexEvent(ctx, event); err != nil {
			log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("Failed to index event")
		}
	}

	log.Info().
		Str("event_id", event.ID.String()).
		Str("organization_id", orgID.String()).
		Msg("Event created")

	s.metrics.IncrementCounter(metrics.EventsCreated)
	return event, nil
}

// GetEvent returns a single event.
func (s *EventService) GetEvent(ctx context.Context, id models.EventID) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Event not found")
		}
		return nil, persistenceError("Failed to load event", err)
	}
	return event, nil
}

// ListEvents returns all events, read through the cache.
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	var cached []models.Event
	if err := s.cache.Get(ctx, cache.EventsCacheKey(), &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Msg("Events cache read failed")
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, persistenceError("Failed to list events", err)
	}

	if err := s.cache.Set(ctx, cache.EventsCacheKey(), events, eventsCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Events cache write failed")
	}
	return events, nil
}

// SearchEvents runs a text search over indexed events.
func (s *EventService) SearchEvents(ctx context.Context, text string) ([]map[string]interface{}, error) {
	if text == "" {
		return nil, validationError("Search text is required")
	}
	if !s.search.Enabled() {
		return nil, upstreamError("Search is not available", nil)
	}

	docs, err := s.search.SearchEvents(ctx, text)
	if err != nil {
		return nil, upstreamError("Search failed", err)
	}
	return docs, nil
}
