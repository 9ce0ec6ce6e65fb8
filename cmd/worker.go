package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/volunteerhub/internal/database"
	"example.com/volunteerhub/internal/metrics"
	"example.com/volunteerhub/internal/repositories"
	"example.com/volunteerhub/internal/services"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background reconciliation worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorker()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close(db)

	reconciler := services.NewReconcileService(
		repositories.NewUserRepository(db),
		metrics.NewMetrics(),
	)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Worker.ReconcileInterval),
		gocron.NewTask(func() {
			if _, err := reconciler.SweepOrphanedLinks(ctx); err != nil {
				log.Error().Err(err).Msg("Reconciliation sweep failed")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule reconciliation job")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Dur("interval", cfg.Worker.ReconcileInterval).
			Msg("Starting reconciliation worker")
		scheduler.Start()
		<-gctx.Done()
		return scheduler.Shutdown()
	})

	return g.Wait()
}
