package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
)

type mockEventStore struct{ mock.Mock }

func (m *mockEventStore) Create(ctx context.Context, event *models.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventStore) Delete(ctx context.Context, id models.EventID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEventStore) GetByID(ctx context.Context, id models.EventID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventStore) List(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

type mockRegistrationStore struct{ mock.Mock }

func (m *mockRegistrationStore) Create(ctx context.Context, reg *models.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *mockRegistrationStore) Delete(ctx context.Context, id models.RegistrationID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRegistrationStore) Find(ctx context.Context, userID models.UserID, eventID models.EventID) (*models.Registration, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func (m *mockRegistrationStore) ListByEvent(ctx context.Context, eventID models.EventID) ([]models.Registration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Registration), args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, id models.UserID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserStore) AppendEvent(ctx context.Context, userID models.UserID, summary models.EventSummary) error {
	return m.Called(ctx, userID, summary).Error(0)
}

func (m *mockUserStore) RemoveEvent(ctx context.Context, userID models.UserID, eventID models.EventID) error {
	return m.Called(ctx, userID, eventID).Error(0)
}

func (m *mockUserStore) ListEvents(ctx context.Context, userID models.UserID) ([]models.EventSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventSummary), args.Error(1)
}

func (m *mockUserStore) ListOrphanedEventLinks(ctx context.Context, limit int) ([]repositories.OrphanedEventLink, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.OrphanedEventLink), args.Error(1)
}

type mockOrganizationStore struct{ mock.Mock }

func (m *mockOrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id models.OrganizationID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *mockOrganizationStore) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *mockOrganizationStore) AppendEvent(ctx context.Context, orgID models.OrganizationID, summary models.EventSummary) error {
	return m.Called(ctx, orgID, summary).Error(0)
}

func (m *mockOrganizationStore) RemoveEvent(ctx context.Context, orgID models.OrganizationID, eventID models.EventID) error {
	return m.Called(ctx, orgID, eventID).Error(0)
}

func (m *mockOrganizationStore) ListEvents(ctx context.Context, orgID models.OrganizationID) ([]models.EventSummary, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventSummary), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, orgID models.OrganizationID, message string) (models.NotificationID, error) {
	args := m.Called(ctx, orgID, message)
	return args.Get(0).(models.NotificationID), args.Error(1)
}
