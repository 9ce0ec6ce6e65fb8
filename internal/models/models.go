package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DateLayout is the calendar-date format used for event dates. Dates in this
// format order correctly under plain string comparison, which the my-events
// past/upcoming split relies on.
const DateLayout = "2006-01-02"

// Registration status values. Only one exists today.
const StatusRegistered = "registered"

// Notification status values owned by the notifier service.
const StatusUnread = "unread"

// User represents a volunteer account.
type User struct {
	ID           UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `json:"fullName"`
	DOB          string    `gorm:"column:dob" json:"dob"`
	Description  string    `json:"description"`

	Events []UserEvent `gorm:"foreignKey:UserID" json:"-"`
}

// Organization represents an organization account that creates events.
type Organization struct {
	ID           OrganizationID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Email        string         `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"organizationName"`
	Description  string         `json:"organizationDescription"`

	CreatedEvents []OrganizationEvent `gorm:"foreignKey:OrganizationID" json:"-"`
}

// Event is a volunteering event. Immutable after creation; the coordinates
// are optional and events without them never rank in proximity queries.
type Event struct {
	ID             EventID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `gorm:"not null" json:"description"`
	Date           string         `gorm:"not null" json:"date"`
	Address        string         `gorm:"not null" json:"address"`
	Lat            *float64       `json:"lat,omitempty"`
	Lng            *float64       `json:"lng,omitempty"`
	OrganizationID OrganizationID `gorm:"type:uuid;not null;index" json:"organization_id"`
}

// HasCoordinates reports whether both coordinates are present.
func (e *Event) HasCoordinates() bool {
	return e.Lat != nil && e.Lng != nil
}

// Summary returns the denormalized form embedded in user and organization
// event lists.
func (e *Event) Summary() EventSummary {
	return EventSummary{ID: e.ID, Name: e.Name, Date: e.Date}
}

// Registration records that a user registered for an event. The composite
// unique index is the store-level backstop for the at-most-one-registration
// invariant; the coordinator's existence check alone is racy.
type Registration struct {
	ID        RegistrationID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UserID    UserID         `gorm:"type:uuid;not null;uniqueIndex:idx_user_event" json:"user_id"`
	EventID   EventID        `gorm:"type:uuid;not null;uniqueIndex:idx_user_event" json:"event_id"`
	Status    string         `gorm:"not null;default:registered" json:"status"`
}

// EventSummary is the denormalized {id, name, date} triple kept on users and
// organizations for fast listing. Consistency with the registrations table is
// the registration saga's job, not a join's.
type EventSummary struct {
	ID   EventID `json:"id"`
	Name string  `json:"name"`
	Date string  `json:"date"`
}

// UserEvent is one entry of a user's denormalized event list.
type UserEvent struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	UserID    UserID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_event_link" json:"-"`
	EventID   EventID `gorm:"type:uuid;not null;uniqueIndex:idx_user_event_link" json:"id"`
	EventName string  `gorm:"not null" json:"name"`
	EventDate string  `gorm:"not null" json:"date"`
}

// OrganizationEvent is one entry of an organization's created-events list.
type OrganizationEvent struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	OrganizationID OrganizationID `gorm:"type:uuid;not null;uniqueIndex:idx_org_event_link" json:"-"`
	EventID        EventID        `gorm:"type:uuid;not null;uniqueIndex:idx_org_event_link" json:"id"`
	EventName      string         `gorm:"not null" json:"name"`
	EventDate      string         `gorm:"not null" json:"date"`
}

// Notification belongs to the notifier service. The organization id stays a
// plain string here: the notifier treats it as an opaque routing key and does
// not validate it against the main database.
type Notification struct {
	ID             NotificationID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	OrganizationID string         `gorm:"not null;index" json:"organization_id"`
	Message        string         `gorm:"not null" json:"message"`
	Status         string         `gorm:"not null;default:unread" json:"status"`
}

// EventDistance is an event paired with its great-circle distance (miles)
// from a query point, as returned by the proximity ranker.
type EventDistance struct {
	ID          EventID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Distance    float64 `json:"distance"`
}

// SetupModels runs the schema migrations for the main backend database.
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Organization{},
		&Event{},
		&Registration{},
		&UserEvent{},
		&OrganizationEvent{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}
	return nil
}

// SetupNotifierModels runs the schema migrations for the notifier database.
func SetupNotifierModels(db *gorm.DB) error {
	if err := db.AutoMigrate(&Notification{}); err != nil {
		return errors.Wrap(err, "failed to run notifier migrations")
	}
	return nil
}
