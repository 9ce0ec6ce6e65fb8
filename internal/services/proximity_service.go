package services

import (
	"context"
	"sort"

	"example.com/volunteerhub/internal/geo"
	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/models"
)

// ProximityService ranks events by great-circle distance from a query point.
type ProximityService struct {
	events  *EventService
	metrics *metrics.Metrics
}

// NewProximityService creates a new proximity service
func NewProximityService(events *EventService, m *metrics.Metrics) *ProximityService {
	return &ProximityService{events: events, metrics: m}
}

// NearestEvents returns every event that has coordinates, ordered by
// ascending distance in miles from (lat, lng). Events without coordinates
// never appear. Equal distances keep the candidate list's order.
func (s *ProximityService) NearestEvents(ctx context.Context, lat, lng float64) ([]models.EventDistance, error) {
	if lat < -90 || lat > 90 {
		return nil, validationError("Latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return nil, validationError("Longitude must be between -180 and 180")
	}

	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]models.EventDistance, 0, len(events))
	for i := range events {
		event := &events[i]
		if !event.HasCoordinates() {
			continue
		}
		ranked = append(ranked, models.EventDistance{
			ID:          event.ID,
			Name:        event.Name,
			Description: event.Description,
			Date:        event.Date,
			Lat:         *event.Lat,
			Lng:         *event.Lng,
			Distance:    geo.DistanceMiles(lat, lng, *event.Lat, *event.Lng),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	s.metrics.IncrementCounter(metrics.ProximityQueries)
	return ranked, nil
}
