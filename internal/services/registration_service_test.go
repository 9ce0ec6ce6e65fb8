package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/volunteerhub/config"
	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/notification"
	"example.com/volunteerhub/internal/repositories"
	"example.com/volunteerhub/internal/tracing"
)

func newTestRegistrationService(events *mockEventStore, regs *mockRegistrationStore, users *mockUserStore, notifier *mockNotifier) *RegistrationService {
	tracer, _ := tracing.NewTracer(config.TracingConfig{})
	return NewRegistrationService(events, regs, users, notifier, metrics.NewMetrics(), tracer)
}

func testEvent(orgID models.OrganizationID) *models.Event {
	return &models.Event{
		ID:             models.NewEventID(),
		Name:           "Beach Cleanup",
		Description:    "Cleaning the shoreline",
		Date:           "2030-06-01",
		Address:        "1 Ocean Drive",
		OrganizationID: orgID,
	}
}

func TestRegisterForEventSuccess(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	user := &models.User{ID: userID, Email: "jane@example.com", FullName: "Jane Doe"}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(nil, repositories.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	regs.On("Create", mock.Anything, mock.AnythingOfType("*models.Registration")).Return(nil)
	users.On("AppendEvent", mock.Anything, userID, event.Summary()).Return(nil)
	notifier.On("Notify", mock.Anything, orgID,
		"Jane Doe registered for your Beach Cleanup volunteering event.").
		Return(models.NewNotificationID(), nil)

	svc := newTestRegistrationService(events, regs, users, notifier)
	reg, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.NoError(t, err)
	require.Equal(t, userID, reg.UserID)
	require.Equal(t, event.ID, reg.EventID)
	require.Equal(t, models.StatusRegistered, reg.Status)

	regs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "RemoveEvent", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestRegisterForEventAnonymousUserMessage(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	user := &models.User{ID: userID, Email: "jane@example.com"}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(nil, repositories.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("AppendEvent", mock.Anything, userID, event.Summary()).Return(nil)
	notifier.On("Notify", mock.Anything, orgID,
		"A volunteer registered for your Beach Cleanup volunteering event.").
		Return(models.NewNotificationID(), nil)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestRegisterForEventNotFound(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	eventID := models.NewEventID()
	events.On("GetByID", mock.Anything, eventID).Return(nil, repositories.ErrNotFound)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), models.NewUserID(), eventID)

	require.Error(t, err)
	require.Equal(t, KindNotFound, KindOf(err))
	regs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterForEventAlreadyRegistered(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	existing := &models.Registration{ID: models.NewRegistrationID(), UserID: userID, EventID: event.ID}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(existing, nil)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.Error(t, err)
	require.Equal(t, KindConflict, KindOf(err))
	regs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

// A notification failure rolls back both earlier writes. Leaving the user's
// event list entry in place while deleting the registration would strand a
// link with no backing registration.
func TestRegisterNotificationFailureCompensatesBothWrites(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	user := &models.User{ID: userID, FullName: "Jane Doe"}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(nil, repositories.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("AppendEvent", mock.Anything, userID, event.Summary()).Return(nil)
	notifier.On("Notify", mock.Anything, orgID, mock.Anything).
		Return(models.NotificationID{}, errors.Wrap(notification.ErrUpstream, "status 500"))

	regs.On("Delete", mock.Anything, mock.AnythingOfType("models.RegistrationID")).Return(nil)
	users.On("RemoveEvent", mock.Anything, userID, event.ID).Return(nil)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.Error(t, err)
	require.Equal(t, KindUpstream, KindOf(err))
	regs.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("models.RegistrationID"))
	users.AssertCalled(t, "RemoveEvent", mock.Anything, userID, event.ID)
}

func TestRegisterUserLinkFailureDeletesRegistration(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	user := &models.User{ID: userID, FullName: "Jane Doe"}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(nil, repositories.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("AppendEvent", mock.Anything, userID, event.Summary()).
		Return(errors.New("connection reset"))
	regs.On("Delete", mock.Anything, mock.AnythingOfType("models.RegistrationID")).Return(nil)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.Error(t, err)
	require.Equal(t, KindPersistence, KindOf(err))
	regs.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("models.RegistrationID"))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

// Two requests can both pass the upfront Find; the unique index on
// (user_id, event_id) makes the store reject the loser, which must surface
// as a conflict rather than a server error.
func TestRegisterConcurrentDuplicateIsConflict(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	user := &models.User{ID: userID, FullName: "Jane Doe"}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(nil, repositories.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.Error(t, err)
	require.Equal(t, KindConflict, KindOf(err))
	regs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "AppendEvent", mock.Anything, mock.Anything, mock.Anything)
}

// Compensation failures are terminal: the original error still comes back
// and the remaining compensations still run.
func TestRegisterCompensationFailureStillReturnsOriginalError(t *testing.T) {
	events := &mockEventStore{}
	regs := &mockRegistrationStore{}
	users := &mockUserStore{}
	notifier := &mockNotifier{}

	orgID := models.NewOrganizationID()
	event := testEvent(orgID)
	userID := models.NewUserID()
	user := &models.User{ID: userID, FullName: "Jane Doe"}

	events.On("GetByID", mock.Anything, event.ID).Return(event, nil)
	regs.On("Find", mock.Anything, userID, event.ID).Return(nil, repositories.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	regs.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("AppendEvent", mock.Anything, userID, event.Summary()).Return(nil)
	notifier.On("Notify", mock.Anything, orgID, mock.Anything).
		Return(models.NotificationID{}, errors.Wrap(notification.ErrUpstream, "timeout"))

	users.On("RemoveEvent", mock.Anything, userID, event.ID).
		Return(errors.New("connection reset"))
	regs.On("Delete", mock.Anything, mock.AnythingOfType("models.RegistrationID")).Return(nil)

	svc := newTestRegistrationService(events, regs, users, notifier)
	_, err := svc.RegisterForEvent(context.Background(), userID, event.ID)

	require.Error(t, err)
	require.Equal(t, KindUpstream, KindOf(err))
	regs.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("models.RegistrationID"))
}
