package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"example.com/volunteerhub/config"
	"example.com/volunteerhub/internal/database"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/notifier"
	"example.com/volunteerhub/internal/repositories"
)

var notifierCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Run the notification service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotifier()
	},
}

func init() {
	rootCmd.AddCommand(notifierCmd)
}

func runNotifier() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The notifier owns its own database.
	db, err := database.Connect(config.DatabaseConfig{
		DSN:             cfg.Notifier.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := models.SetupNotifierModels(db); err != nil {
		return err
	}

	service := notifier.NewService(
		repositories.NewNotificationRepository(db),
		cfg.Notifier.RetryAttempts,
		cfg.Notifier.RetryDelay,
	)
	server := notifier.NewServer(service, cfg.Notifier.ServerAddress)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
