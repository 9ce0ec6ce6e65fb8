package models

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// Each entity gets its own ID type so a user id can never be passed where an
// event id is expected. All of them are UUIDs on the wire and in postgres.

// UserID identifies a volunteer account.
type UserID uuid.UUID

// OrganizationID identifies an organization account.
type OrganizationID uuid.UUID

// EventID identifies an event.
type EventID uuid.UUID

// RegistrationID identifies a registration record.
type RegistrationID uuid.UUID

// NotificationID identifies a notification owned by the notifier service.
type NotificationID uuid.UUID

func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewOrganizationID() OrganizationID { return OrganizationID(uuid.New()) }
func NewEventID() EventID               { return EventID(uuid.New()) }
func NewRegistrationID() RegistrationID { return RegistrationID(uuid.New()) }
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	return UserID(id), err
}

func ParseOrganizationID(s string) (OrganizationID, error) {
	id, err := uuid.Parse(s)
	return OrganizationID(id), err
}

func ParseEventID(s string) (EventID, error) {
	id, err := uuid.Parse(s)
	return EventID(id), err
}

func ParseNotificationID(s string) (NotificationID, error) {
	id, err := uuid.Parse(s)
	return NotificationID(id), err
}

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id EventID) String() string        { return uuid.UUID(id).String() }
func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool         { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsZero() bool        { return uuid.UUID(id) == uuid.Nil }
func (id RegistrationID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// driver.Valuer / sql.Scanner glue so gorm stores the types as uuid columns.

func (id UserID) Value() (driver.Value, error)         { return uuid.UUID(id).Value() }
func (id OrganizationID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id EventID) Value() (driver.Value, error)        { return uuid.UUID(id).Value() }
func (id RegistrationID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id NotificationID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

func (id *UserID) Scan(src interface{}) error         { return (*uuid.UUID)(id).Scan(src) }
func (id *OrganizationID) Scan(src interface{}) error { return (*uuid.UUID)(id).Scan(src) }
func (id *EventID) Scan(src interface{}) error        { return (*uuid.UUID)(id).Scan(src) }
func (id *RegistrationID) Scan(src interface{}) error { return (*uuid.UUID)(id).Scan(src) }
func (id *NotificationID) Scan(src interface{}) error { return (*uuid.UUID)(id).Scan(src) }

// encoding.TextMarshaler glue so the types serialize as plain uuid strings.

func (id UserID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id OrganizationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id EventID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id RegistrationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NotificationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *OrganizationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EventID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RegistrationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NotificationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
