package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/volunteerhub/internal/models"
)

// UserRepository provides access to user records and the user's denormalized
// event list.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A duplicate email surfaces as ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID returns a single user or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

// GetByEmail returns the user with the given email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get user by email")
	}
	return &user, nil
}

// Update persists the mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return errors.Wrap(err, "failed to update user")
	}
	return nil
}

// Delete removes a user account.
func (r *UserRepository) Delete(ctx context.Context, id models.UserID) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendEvent adds an event summary to the user's denormalized list. Adding
// the same event twice is a no-op, matching set semantics.
func (r *UserRepository) AppendEvent(ctx context.Context, userID models.UserID, summary models.EventSummary) error {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
		return errors.Wrap(err, "failed to check user")
	}
	if exists == 0 {
		return ErrNotFound
	}

	link := models.UserEvent{
		UserID:    userID,
		EventID:   summary.ID,
		EventName: summary.Name,
		EventDate: summary.Date,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	if err != nil {
		return errors.Wrap(err, "failed to append user event")
	}
	return nil
}

// RemoveEvent removes an event summary from the user's list. Used as saga
// compensation and by the reconciliation sweep.
func (r *UserRepository) RemoveEvent(ctx context.Context, userID models.UserID, eventID models.EventID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.UserEvent{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to remove user event")
	}
	return nil
}

// ListEvents returns the user's denormalized event list.
func (r *UserRepository) ListEvents(ctx context.Context, userID models.UserID) ([]models.EventSummary, error) {
	var links []models.UserEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_date ASC").
		Find(&links).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user events")
	}

	summaries := make([]models.EventSummary, 0, len(links))
	for _, l := range links {
		summaries = append(summaries, models.EventSummary{ID: l.EventID, Name: l.EventName, Date: l.EventDate})
	}
	return summaries, nil
}

// OrphanedEventLink pairs a user with an event summary that has no backing
// registration.
type OrphanedEventLink struct {
	UserID  models.UserID
	EventID models.EventID
}

// ListOrphanedEventLinks finds user-event links whose (user, event) pair has
// no registration row. These are leftovers of partially compensated sagas.
func (r *UserRepository) ListOrphanedEventLinks(ctx context.Context, limit int) ([]OrphanedEventLink, error) {
	var orphans []OrphanedEventLink
	err := r.db.WithContext(ctx).
		Table("user_events").
		Select("user_events.user_id, user_events.event_id").
		Joins("LEFT JOIN registrations ON registrations.user_id = user_events.user_id AND registrations.event_id = user_events.event_id").
		Where("registrations.id IS NULL").
		Limit(limit).
		Scan(&orphans).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orphaned user events")
	}
	return orphans, nil
}
