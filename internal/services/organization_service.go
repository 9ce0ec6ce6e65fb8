package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/auth"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
)

// OrganizationService handles organization accounts.
type OrganizationService struct {
	orgs     OrganizationStore
	jwt      *auth.JWTManager
	validate *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgs OrganizationStore, jwt *auth.JWTManager) *OrganizationService {
	return &OrganizationService{
		orgs:     orgs,
		jwt:      jwt,
		validate: validator.New(),
	}
}

// Signup creates an organization account.
func (s *OrganizationService) Signup(ctx context.Context, req models.SignupRequest) (*models.Organization, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("Invalid signup payload: " + err.Error())
	}
	if len(req.Password) < auth.MinPasswordLength {
		return nil, validationError("Password must be at least 8 characters")
	}
	if req.OrganizationName == "" {
		return nil, validationError("Organization name is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, persistenceError("Failed to hash password", err)
	}

	org := &models.Organization{
		ID:           models.NewOrganizationID(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.OrganizationName,
		Description:  req.OrganizationDescription,
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, conflictError("Email already registered")
		}
		return nil, persistenceError("Failed to create organization", err)
	}

	log.Info().Str("organization_id", org.ID.String()).Msg("Organization signed up")
	return org, nil
}

// Login verifies credentials and issues a token with the organization role.
func (s *OrganizationService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError("Invalid login payload: " + err.Error())
	}

	org, err := s.orgs.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, unauthorizedError("Invalid email or password")
		}
		return nil, persistenceError("Failed to load organization", err)
	}

	if !auth.CheckPassword(org.PasswordHash, req.Password) {
		return nil, unauthorizedError("Invalid email or password")
	}

	token, err := s.jwt.Generate(org.ID.String(), auth.RoleOrganization)
	if err != nil {
		return nil, persistenceError("Failed to issue token", err)
	}

	return &models.LoginResult{
		Token:    token,
		ID:       org.ID.String(),
		Email:    org.Email,
		UserType: auth.RoleOrganization,
	}, nil
}

// GetByID returns an organization's profile.
func (s *OrganizationService) GetByID(ctx context.Context, id models.OrganizationID) (*models.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("Organization not found")
		}
		return nil, persistenceError("Failed to load organization", err)
	}
	return org, nil
}

// MyEvents returns the organization's created-events list.
func (s *OrganizationService) MyEvents(ctx context.Context, id models.OrganizationID) ([]models.EventSummary, error) {
	summaries, err := s.orgs.ListEvents(ctx, id)
	if err != nil {
		return nil, persistenceError("Failed to list organization events", err)
	}
	return summaries, nil
}
