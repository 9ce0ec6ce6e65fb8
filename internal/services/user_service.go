package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/auth"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
)

// UserService handles volunteer accounts: signup, login, profile, and the
// denormalized my-events list.
type UserService struct {
	users    UserStore
	jwt      *auth.JWTManager
	validate *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(users UserStore, jwt *auth.JWTManager) *UserService {
	return &UserService{
		users:    users,
		jwt:      jwt,
		validate: validator.New(),
	}
}

// Signup creates a volunteer account. The email must be unused across users.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("Invalid signup payload: " + err.Error())
	}
	if len(req.Password) < auth.MinPasswordLength {
		return nil, validationError("Password must be at least 8 characters")
	}
	if req.DOB != "" {
		if _, err := time.Parse(models.DateLayout, req.DOB); err != nil {
			return nil, validationError("Date of birth must be formatted as YYYY-MM-DD")
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, persistenceError("Failed to hash password", err)
	}

	user := &models.User{
		ID:           models.NewUserID(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		DOB:          req.DOB,
		Description:  req.Description,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, conflictError("Email already registered")
		}
		return nil, persistenceError("Failed to create user", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User signed up")
	return user, nil
}

// Login verifies credentials and issues a token with the volunteer role.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("Invalid login payload: " + err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, unauthorizedError("Invalid email or password")
		}
		return nil, persistenceError("Failed to load user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, unauthorizedError("Invalid email or password")
	}

	token, err := s.jwt.Generate(user.ID.String(), auth.RoleVolunteer)
	if err != nil {
		return nil, persistenceError("Failed to issue token", err)
	}

	return &models.LoginResult{
		Token:    token,
		ID:       user.ID.String(),
		Email:    user.Email,
		UserType: auth.RoleVolunteer,
	}, nil
}

// GetByID returns a user's profile.
func (s *UserService) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, persistenceError("Failed to load user", err)
	}
	return user, nil
}

// UpdateProfile applies the mutable profile fields. Email and date of birth
// never change after signup.
func (s *UserService) UpdateProfile(ctx context.Context, id models.UserID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, persistenceError("Failed to load user", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Description != nil {
		user.Description = *req.Description
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, persistenceError("Failed to update user", err)
	}
	return user, nil
}

// DeleteAccount removes a volunteer account.
func (s *UserService) DeleteAccount(ctx context.Context, id models.UserID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFoundError("User not found")
		}
		return persistenceError("Failed to delete user", err)
	}
	log.Info().Str("user_id", id.String()).Msg("User account deleted")
	return nil
}

// MyEvents returns the user's denormalized event list split into past and
// upcoming around today. Dates are YYYY-MM-DD strings, so plain string
// comparison orders them correctly; today counts as upcoming.
func (s *UserService) MyEvents(ctx context.Context, id models.UserID) (*models.MyEvents, error) {
	summaries, err := s.users.ListEvents(ctx, id)
	if err != nil {
		return nil, persistenceError("Failed to list user events", err)
	}

	today := time.Now().Format(models.DateLayout)
	out := &models.MyEvents{
		PastEvents:     make([]models.EventSummary, 0),
		UpcomingEvents: make([]models.EventSummary, 0),
	}
	for _, summary := range summaries {
		if summary.Date < today {
			out.PastEvents = append(out.PastEvents, summary)
		} else {
			out.UpcomingEvents = append(out.UpcomingEvents, summary)
		}
	}
	return out, nil
}
