// Package cmd holds the cobra commands that run the services.
package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/volunteerhub/config"
)

var (
	cfgPath string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "volunteerhub",
	Short: "Volunteer Hub backend services",
	Long:  "Volunteer Hub: the volunteering platform backend, its notification service, and the reconciliation worker.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		setupLogging(cfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "./config", "path to the directory holding config.yaml")
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "console" || cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
