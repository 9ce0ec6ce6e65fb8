package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/metrics"
)

// reconcileBatchSize bounds one sweep so a large backlog cannot hold a
// connection for minutes.
const reconcileBatchSize = 500

// ReconcileService repairs user-event links left behind by partially
// compensated registrations. A link without a backing registration is
// removed; the registration table stays the source of truth.
type ReconcileService struct {
	users   UserStore
	metrics *metrics.Metrics
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(users UserStore, m *metrics.Metrics) *ReconcileService {
	return &ReconcileService{users: users, metrics: m}
}

// SweepOrphanedLinks removes user-event links with no backing registration
// and returns how many it removed. Individual removal failures are logged
// and skipped; the next sweep picks them up again.
func (s *ReconcileService) SweepOrphanedLinks(ctx context.Context) (int, error) {
	orphans, err := s.users.ListOrphanedEventLinks(ctx, reconcileBatchSize)
	if err != nil {
		return 0, persistenceError("Failed to list orphaned event links", err)
	}

	removed := 0
	for _, orphan := range orphans {
		if err := s.users.RemoveEvent(ctx, orphan.UserID, orphan.EventID); err != nil {
			log.Warn().
				Err(err).
				Str("user_id", orphan.UserID.String()).
				Str("event_id", orphan.EventID.String()).
				Msg("Failed to remove orphaned event link")
			continue
		}
		removed++
		s.metrics.IncrementCounter(metrics.ReconciledUserEventLinks)
	}

	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Reconciled orphaned user-event links")
	}
	return removed, nil
}
