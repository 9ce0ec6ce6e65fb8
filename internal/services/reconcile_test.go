package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/repositories"
)

func TestSweepRemovesOrphanedLinks(t *testing.T) {
	users := &mockUserStore{}
	orphans := []repositories.OrphanedEventLink{
		{UserID: models.NewUserID(), EventID: models.NewEventID()},
		{UserID: models.NewUserID(), EventID: models.NewEventID()},
	}
	users.On("ListOrphanedEventLinks", mock.Anything, reconcileBatchSize).Return(orphans, nil)
	for _, o := range orphans {
		users.On("RemoveEvent", mock.Anything, o.UserID, o.EventID).Return(nil)
	}

	svc := NewReconcileService(users, metrics.NewMetrics())
	removed, err := svc.SweepOrphanedLinks(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, removed)
	users.AssertExpectations(t)
}

func TestSweepNothingToDo(t *testing.T) {
	users := &mockUserStore{}
	users.On("ListOrphanedEventLinks", mock.Anything, reconcileBatchSize).
		Return([]repositories.OrphanedEventLink{}, nil)

	svc := NewReconcileService(users, metrics.NewMetrics())
	removed, err := svc.SweepOrphanedLinks(context.Background())

	require.NoError(t, err)
	require.Zero(t, removed)
	users.AssertNotCalled(t, "RemoveEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepContinuesPastRemovalFailure(t *testing.T) {
	users := &mockUserStore{}
	first := repositories.OrphanedEventLink{UserID: models.NewUserID(), EventID: models.NewEventID()}
	second := repositories.OrphanedEventLink{UserID: models.NewUserID(), EventID: models.NewEventID()}

	users.On("ListOrphanedEventLinks", mock.Anything, reconcileBatchSize).
		Return([]repositories.OrphanedEventLink{first, second}, nil)
	users.On("RemoveEvent", mock.Anything, first.UserID, first.EventID).
		Return(errors.New("connection reset"))
	users.On("RemoveEvent", mock.Anything, second.UserID, second.EventID).Return(nil)

	svc := NewReconcileService(users, metrics.NewMetrics())
	removed, err := svc.SweepOrphanedLinks(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, removed)
}
