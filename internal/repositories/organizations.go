package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/volunteerhub/internal/models"
)

// OrganizationRepository provides access to organization records and the
// organization's denormalized created-events list.
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create inserts a new organization. A duplicate email surfaces as
// ErrDuplicateKey.
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "failed to create organization")
	}
	return nil
}

// GetByID returns a single organization or ErrNotFound.
func (r *OrganizationRepository) GetByID(ctx context.Context, id models.OrganizationID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get organization")
	}
	return &org, nil
}

// GetByEmail returns the organization with the given email or ErrNotFound.
func (r *OrganizationRepository) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.WithContext(ctx).First(&org, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get organization by email")
	}
	return &org, nil
}

// AppendEvent adds an event summary to the organization's created-events
// list. Same set semantics as the user-side list.
func (r *OrganizationRepository) AppendEvent(ctx context.Context, orgID models.OrganizationID, summary models.EventSummary) error {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Organization{}).Where("id = ?", orgID).Count(&exists).Error; err != nil {
		return errors.Wrap(err, "failed to check organization")
	}
	if exists == 0 {
		return ErrNotFound
	}

	link := models.OrganizationEvent{
		OrganizationID: orgID,
		EventID:        summary.ID,
		EventName:      summary.Name,
		EventDate:      summary.Date,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	if err != nil {
		return errors.Wrap(err, "failed to append organization event")
	}
	return nil
}

// RemoveEvent removes an event summary from the organization's list.
func (r *OrganizationRepository) RemoveEvent(ctx context.Context, orgID models.OrganizationID, eventID models.EventID) error {
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND event_id = ?", orgID, eventID).
		Delete(&models.OrganizationEvent{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to remove organization event")
	}
	return nil
}

// ListEvents returns the organization's created-events list.
func (r *OrganizationRepository) ListEvents(ctx context.Context, orgID models.OrganizationID) ([]models.EventSummary, error) {
	var links []models.OrganizationEvent
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("event_date ASC").
		Find(&links).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list organization events")
	}

	summaries := make([]models.EventSummary, 0, len(links))
	for _, l := range links {
		summaries = append(summaries, models.EventSummary{ID: l.EventID, Name: l.EventName, Date: l.EventDate})
	}
	return summaries, nil
}
