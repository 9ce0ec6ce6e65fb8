package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/volunteerhub/internal/models"
)

// RegistrationRepository provides access to registration records.
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration. The (user_id, event_id) unique index makes
// the store reject the loser of a concurrent duplicate-registration race;
// that surfaces as ErrDuplicateKey.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "failed to create registration")
	}
	return nil
}

// Delete removes a registration. Used as saga compensation.
func (r *RegistrationRepository) Delete(ctx context.Context, id models.RegistrationID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Registration{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete registration")
	}
	return nil
}

// Find returns the registration for a (user, event) pair or ErrNotFound.
func (r *RegistrationRepository) Find(ctx context.Context, userID models.UserID, eventID models.EventID) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find registration")
	}
	return &reg, nil
}

// ListByEvent returns all registrations for an event.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID models.EventID) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list registrations")
	}
	return regs, nil
}
