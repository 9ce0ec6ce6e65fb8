// Package notifier implements the notification service: a small, separately
// deployed HTTP service with its own database. Writes are retried against
// transient storage failures; malformed requests are rejected up front and
// never retried.
package notifier

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/models"
)

var (
	// ErrValidation marks requests rejected before any storage attempt.
	ErrValidation = errors.New("invalid notification request")
	// ErrStorage marks requests that exhausted all storage attempts.
	ErrStorage = errors.New("failed to store notification")
)

// NotificationStore is the persistence surface the service needs.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByOrganization(ctx context.Context, orgID string) ([]models.Notification, error)
}

// Service creates and lists notifications.
type Service struct {
	store         NotificationStore
	retryAttempts int
	retryDelay    time.Duration
}

// NewService creates the notifier service. Attempts below 1 are clamped to 1.
func NewService(store NotificationStore, retryAttempts int, retryDelay time.Duration) *Service {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &Service{
		store:         store,
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
	}
}

// CreateNotification validates the request and stores a notification,
// retrying the insert with a fixed delay between attempts. Validation
// failures are terminal and never retried.
func (s *Service) CreateNotification(ctx context.Context, orgID, message string) (*models.Notification, error) {
	if strings.TrimSpace(orgID) == "" {
		return nil, errors.Wrap(ErrValidation, "org_id is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.Wrap(ErrValidation, "message is required")
	}

	notification := &models.Notification{
		ID:             models.NewNotificationID(),
		OrganizationID: orgID,
		Message:        message,
		Status:         models.StatusUnread,
	}

	var lastErr error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		lastErr = s.store.Create(ctx, notification)
		if lastErr == nil {
			return notification, nil
		}

		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", s.retryAttempts).
			Str("org_id", orgID).
			Msg("Notification insert failed")

		if attempt < s.retryAttempts {
			if err := sleepCtx(ctx, s.retryDelay); err != nil {
				return nil, errors.Wrapf(ErrStorage, "aborted after %d attempts: %v", attempt, err)
			}
		}
	}

	return nil, errors.Wrapf(ErrStorage, "gave up after %d attempts: %v", s.retryAttempts, lastErr)
}

// ListNotifications returns all notifications for an organization, oldest
// first. An unknown organization yields an empty list, not an error.
func (s *Service) ListNotifications(ctx context.Context, orgID string) ([]models.Notification, error) {
	if strings.TrimSpace(orgID) == "" {
		return nil, errors.Wrap(ErrValidation, "organization id is required")
	}
	return s.store.ListByOrganization(ctx, orgID)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
