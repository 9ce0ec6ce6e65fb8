package models

// Request payloads crossing the HTTP boundary. Validation tags are enforced
// at the service layer; gin's binding handles the structural checks.

// SignupRequest covers both actor types; the role-specific fields are
// required depending on UserType.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	UserType string `json:"userType" validate:"omitempty,oneof=volunteer organization"`

	// Volunteer fields.
	FullName    string `json:"fullName"`
	DOB         string `json:"dob"`
	Description string `json:"description"`

	// Organization fields.
	OrganizationName        string `json:"organizationName"`
	OrganizationDescription string `json:"organizationDescription"`
}

// LoginRequest authenticates either actor type.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the mutable profile fields. Email and date of
// birth are immutable after signup.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName"`
	Description *string `json:"description"`
}

// CreateEventRequest is the payload for POST /volunteering/create-event.
type CreateEventRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Lat         *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng" validate:"omitempty,longitude"`
}

// MyEvents is a user's denormalized event list split around today.
type MyEvents struct {
	PastEvents     []EventSummary `json:"past_events"`
	UpcomingEvents []EventSummary `json:"upcoming_events"`
}

// LoginResult is what a successful login returns to the handler.
type LoginResult struct {
	Token    string `json:"-"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}
