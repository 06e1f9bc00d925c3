// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/clubtable/internal/config"
	appdb "github.com/codr1/clubtable/internal/db"
	"github.com/codr1/clubtable/internal/email"
	"github.com/codr1/clubtable/internal/ratelimit"
	"github.com/codr1/clubtable/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if environment == "development" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newEmailClient returns nil when SES cannot be configured; the reminder job then skips
// its runs.
func newEmailClient(cfg *config.Config) email.EmailSender {
	client, err := email.NewSESClient(
		cfg.Reminders.AccessKeyID,
		cfg.Reminders.SecretAccessKey,
		cfg.Reminders.Region,
		cfg.Reminders.Sender,
	)
	if err != nil {
		log.Warn().Err(err).Msg("Email client unavailable, reminders will be skipped")
		return nil
	}
	return client
}

func main() {
	configPath := getEnv("CONFIG_PATH", "config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := appdb.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	seeded, err := database.SeedTeams(seedCtx)
	seedCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed teams")
	}
	if seeded > 0 {
		log.Info().Int("teams", seeded).Msg("Seeded teams")
	}

	limiter := ratelimit.New(ratelimit.FromSettings(
		cfg.Login.MaxFailures,
		time.Duration(cfg.Login.LockoutMinutes)*time.Minute,
		cfg.Login.MaxIPPerHour,
	))
	defer limiter.Close()

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if cfg.Reminders.Enabled {
		if err := scheduler.RegisterDesignationReminderJob(database.Queries, newEmailClient(cfg), cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to register reminder job")
		}
	} else {
		log.Info().Msg("Designation reminders disabled")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	server := newServer(cfg, database, limiter)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
