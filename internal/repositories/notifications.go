package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/volunteerhub/internal/models"
)

// NotificationRepository provides access to notification records. It backs
// the notifier service only; the main backend never touches this table.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return errors.Wrap(err, "failed to create notification")
	}
	return nil
}

// ListByOrganization returns all notifications addressed to an organization.
func (r *NotificationRepository) ListByOrganization(ctx context.Context, orgID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}
	return notifications, nil
}
