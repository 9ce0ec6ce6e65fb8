package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/notification"
	"example.com/volunteerhub/internal/repositories"
	"example.com/volunteerhub/internal/saga"
	"example.com/volunteerhub/internal/tracing"
)

// RegistrationService coordinates event registration across three
// independently owned resources: the registrations table, the user's
// denormalized event list, and the notification service. There is no shared
// transaction; a failure partway through compensates the completed writes in
// reverse order.
type RegistrationService struct {
	events        EventStore
	registrations RegistrationStore
	users         UserStore
	notifier      Notifier
	metrics       *metrics.Metrics
	tracer        tracing.Tracer
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	events EventStore,
	registrations RegistrationStore,
	users UserStore,
	notifier Notifier,
	m *metrics.Metrics,
	tracer tracing.Tracer,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		users:         users,
		notifier:      notifier,
		metrics:       m,
		tracer:        tracer,
	}
}

// RegisterForEvent registers a user for an event. On success all three
// writes exist; on failure none of them survive. A second registration for
// the same (user, event) pair is a conflict, whether caught by the upfront
// check or by the store's unique index when two requests race.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, userID models.UserID, eventID models.EventID) (*models.Registration, error) {
	txn := s.tracer.StartTransaction("registration.register_for_event")
	defer s.tracer.EndTransaction(txn)
	s.tracer.AddAttribute(txn, "user_id", userID.String())
	s.tracer.AddAttribute(txn, "event_id", eventID.String())

	start := time.Now()
	defer func() { s.metrics.RecordTimer("register_for_event", time.Since(start)) }()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.metrics.RecordError("register_for_event")
			return nil, notFoundError("Event not found")
		}
		s.tracer.RecordError(txn, err)
		s.metrics.RecordError("register_for_event")
		return nil, persistenceError("Failed to load event", err)
	}

	if _, err := s.registrations.Find(ctx, userID, eventID); err == nil {
		s.metrics.IncrementCounter(metrics.RegistrationConflicts)
		s.metrics.RecordError("register_for_event")
		return nil, conflictError("User already registered for this event")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		s.tracer.RecordError(txn, err)
		s.metrics.RecordError("register_for_event")
		return nil, persistenceError("Failed to check registration", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.metrics.RecordError("register_for_event")
			return nil, notFoundError("User not found")
		}
		s.tracer.RecordError(txn, err)
		s.metrics.RecordError("register_for_event")
		return nil, persistenceError("Failed to load user", err)
	}

	registration := &models.Registration{
		ID:      models.NewRegistrationID(),
		UserID:  userID,
		EventID: eventID,
		Status:  models.StatusRegistered,
	}

	var sagaErr error
	steps := []saga.Step{
		{
			Name: "insert-registration",
			Run: func(ctx context.Context) error {
				if err := s.registrations.Create(ctx, registration); err != nil {
					sagaErr = err
					return err
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.registrations.Delete(ctx, registration.ID)
			},
		},
		{
			Name: "append-user-event",
			Run: func(ctx context.Context) error {
				if err := s.users.AppendEvent(ctx, userID, event.Summary()); err != nil {
					sagaErr = err
					return err
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.users.RemoveEvent(ctx, userID, eventID)
			},
		},
		{
			Name: "notify-organization",
			Run: func(ctx context.Context) error {
				if _, err := s.notifier.Notify(ctx, event.OrganizationID, registrationMessage(user, event)); err != nil {
					s.metrics.IncrementCounter(metrics.NotificationFailures)
					sagaErr = err
					return err
				}
				return nil
			},
		},
	}

	if err := saga.Run(ctx, "register-for-event", steps); err != nil {
		s.tracer.RecordError(txn, err)
		s.metrics.IncrementCounter(metrics.RegistrationsCompensated)
		s.metrics.RecordError("register_for_event")
		return nil, classifySagaFailure(sagaErr)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("event_id", eventID.String()).
		Str("registration_id", registration.ID.String()).
		Msg("User registered for event")

	s.metrics.IncrementCounter(metrics.RegistrationsCompleted)
	s.metrics.RecordSuccess("register_for_event")
	return registration, nil
}

// registrationMessage builds the notification text sent to the event's
// organization. Falls back to a generic actor when the profile has no name.
func registrationMessage(user *models.User, event *models.Event) string {
	name := user.FullName
	if name == "" {
		name = "A volunteer"
	}
	return fmt.Sprintf("%s registered for your %s volunteering event.", name, event.Name)
}

func classifySagaFailure(err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		// The loser of a concurrent duplicate-registration race lands here.
		return conflictError("User already registered for this event")
	case errors.Is(err, repositories.ErrNotFound):
		return notFoundError("User not found")
	case errors.Is(err, notification.ErrUpstream):
		return upstreamError("Failed to notify organization", err)
	default:
		return persistenceError("Registration failed", err)
	}
}
