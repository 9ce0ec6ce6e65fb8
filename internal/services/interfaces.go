package services

import (
	"context"
	"time"

	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
)

// The services depend on these narrow store interfaces rather than the
// concrete repositories so tests can substitute mocks. The repositories
// satisfy them structurally.

// EventStore is the persistence surface for events.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id models.EventID) error
	GetByID(ctx context.Context, id models.EventID) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
}

// RegistrationStore is the persistence surface for registrations.
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	Delete(ctx context.Context, id models.RegistrationID) error
	Find(ctx context.Context, userID models.UserID, eventID models.EventID) (*models.Registration, error)
	ListByEvent(ctx context.Context, eventID models.EventID) ([]models.Registration, error)
}

// UserStore is the persistence surface for users and their event lists.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id models.UserID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id models.UserID) error
	AppendEvent(ctx context.Context, userID models.UserID, summary models.EventSummary) error
	RemoveEvent(ctx context.Context, userID models.UserID, eventID models.EventID) error
	ListEvents(ctx context.Context, userID models.UserID) ([]models.EventSummary, error)
	ListOrphanedEventLinks(ctx context.Context, limit int) ([]repositories.OrphanedEventLink, error)
}

// OrganizationStore is the persistence surface for organizations and their
// created-events lists.
type OrganizationStore interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id models.OrganizationID) (*models.Organization, error)
	GetByEmail(ctx context.Context, email string) (*models.Organization, error)
	AppendEvent(ctx context.Context, orgID models.OrganizationID, summary models.EventSummary) error
	RemoveEvent(ctx context.Context, orgID models.OrganizationID, eventID models.EventID) error
	ListEvents(ctx context.Context, orgID models.OrganizationID) ([]models.EventSummary, error)
}

// Notifier is the outbound notification boundary.
type Notifier interface {
	Notify(ctx context.Context, orgID models.OrganizationID, message string) (models.NotificationID, error)
}

// Cache is the read-through cache the listing paths use.
type Cache interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
