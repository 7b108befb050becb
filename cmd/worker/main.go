// Package main provides the entrypoint for the FitPlan digest worker.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/config"
	"github.com/fitplan/fitplan/internal/database"
	"github.com/fitplan/fitplan/internal/featureflags"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/worker"
	"github.com/fitplan/fitplan/internal/workout"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type healthResponse struct {
	models.Health
	Digest map[string]interface{} `json:"digest"`
}

func main() {
	const serviceName = "fitplan-worker"

	if err := config.LoadDotEnv(); err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load .env")
	}
	appConfig := config.FromEnv()
	workerConfig := worker.ConfigFromEnv()

	log := config.NewLogger(os.Stdout, serviceName, Version, appConfig.LogLevel, appConfig.LogFormat)
	log.Info().
		Str("build_time", BuildTime).
		Bool("pubsub", workerConfig.PubSubEnabled()).
		Msg("starting FitPlan worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryConfig := telemetry.ConfigFromEnv(serviceName, Version)
	tp, err := telemetry.Init(ctx, telemetryConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()
	domainMetrics, err := telemetry.NewDomainMetrics(telemetry.Meter("fitplan-worker"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize domain metrics")
	}

	var (
		profileRepo profile.Repository
		workoutRepo workout.Repository
		bodyRepo    body.Repository
		flagRepo    featureflags.Repository
	)
	if database.Enabled() {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		profileRepo = profile.NewPostgresRepository(pool)
		workoutRepo = workout.NewPostgresRepository(pool)
		bodyRepo = body.NewPostgresRepository(pool)
		flagRepo = featureflags.NewPostgresRepository(pool)
	} else {
		log.Warn().Msg("no database configured - digests will run against empty in-memory storage")
		profileRepo = profile.NewInMemoryRepository()
		workoutRepo = workout.NewInMemoryRepository()
		bodyRepo = body.NewInMemoryRepository()
		flagRepo = featureflags.NewInMemoryRepository()
	}

	var (
		publisher    worker.Publisher = worker.LogPublisher{Logger: log}
		pubsubClient *pubsub.Client
	)
	if workerConfig.PubSubEnabled() {
		pubsubClient, err = pubsub.NewClient(ctx, workerConfig.ProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub client")
		}
		defer pubsubClient.Close()

		digestPublisher := worker.NewPubSubPublisher(pubsubClient, workerConfig.DigestTopic)
		defer digestPublisher.Stop()
		publisher = digestPublisher
	}

	job := worker.NewDigestJob(worker.DigestJobConfig{
		Config:   workerConfig,
		Logger:   log,
		Profiles: profile.NewService(profileRepo),
		Workouts: workout.NewService(workoutRepo),
		BodyLog:  body.NewService(bodyRepo),
		Flags: featureflags.NewService(featureflags.ServiceConfig{
			Repository: flagRepo,
			Logger:     log,
			CacheTTL:   1 * time.Minute,
		}),
		Publisher: publisher,
		Metrics:   domainMetrics,
	})

	// The worker also exposes a health endpoint for Cloud Run.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, healthResponse{
			Health: models.Health{
				Status:  models.HealthStatusOK,
				Time:    models.Timestamp(time.Now()),
				Details: map[string]string{"version": Version},
			},
			Digest: job.MetricsSnapshot(),
		})
	})
	server := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	if pubsubClient != nil {
		handler := worker.NewPubSubHandler(worker.PubSubConfig{
			Client:           pubsubClient,
			SubscriptionName: workerConfig.Subscription,
			Dispatcher:       worker.NewDispatcher(job, log),
			Logger:           log,
		})
		go func() {
			if err := handler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub receive stopped")
			}
		}()
	} else {
		scheduler, err := worker.NewScheduler(workerConfig.Schedule, job, log)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid digest schedule")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
