// Package main provides the entrypoint for the FitPlan API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api"
	"github.com/fitplan/fitplan/internal/api/handler"
	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/auth"
	"github.com/fitplan/fitplan/internal/backup"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/config"
	"github.com/fitplan/fitplan/internal/database"
	"github.com/fitplan/fitplan/internal/featureflags"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/progress"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/workout"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type repositories struct {
	users    auth.UserRepository
	refresh  auth.RefreshTokenRepository
	profiles profile.Repository
	workouts workout.Repository
	body     body.Repository
	flags    featureflags.Repository
}

func main() {
	const serviceName = "fitplan-api"

	if err := config.LoadDotEnv(); err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load .env")
	}
	cfg := config.FromEnv()

	log := config.NewLogger(os.Stdout, serviceName, Version, cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting FitPlan API")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryConfig := telemetry.ConfigFromEnv(serviceName, Version)
	tp, err := telemetry.Init(ctx, telemetryConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()
	if telemetryConfig.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryConfig.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}
	domainMetrics, err := telemetry.NewDomainMetrics(telemetry.Meter("fitplan"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize domain metrics")
	}

	// Storage: Postgres when configured, in-memory otherwise.
	var (
		repos repositories
		db    handler.Pinger
	)
	if database.Enabled() {
		pool := mustConnect(ctx, log)
		defer pool.Close()
		db = pool
		repos = repositories{
			users:    auth.NewPostgresUserRepository(pool),
			refresh:  auth.NewPostgresRefreshTokenRepository(pool),
			profiles: profile.NewPostgresRepository(pool),
			workouts: workout.NewPostgresRepository(pool),
			body:     body.NewPostgresRepository(pool),
			flags:    featureflags.NewPostgresRepository(pool),
		}
	} else {
		if cfg.IsProduction() {
			log.Fatal().Msg("DATABASE_URL or DB_HOST is required in production")
		}
		log.Warn().Msg("no database configured - using in-memory storage")
		repos = repositories{
			users:    auth.NewInMemoryUserRepository(),
			refresh:  auth.NewInMemoryRefreshTokenRepository(),
			profiles: profile.NewInMemoryRepository(),
			workouts: workout.NewInMemoryRepository(),
			body:     body.NewInMemoryRepository(),
			flags:    featureflags.NewInMemoryRepository(),
		}
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET is required in production")
		}
		jwtSecret = config.DevJWTSecret
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	authService := auth.NewService(auth.ServiceConfig{
		JWTService:  auth.NewJWTService(auth.JWTConfig{SigningKey: jwtSecret, Issuer: serviceName}),
		UserRepo:    repos.users,
		RefreshRepo: repos.refresh,
	})
	profileService := profile.NewService(repos.profiles)
	workoutService := workout.NewService(repos.workouts)
	bodyService := body.NewService(repos.body)
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repos.flags,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("services initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		DomainMetrics:  domainMetrics,
		DB:             db,
		RequireTLS:     cfg.RequireTLS,
		AllowedOrigins: cfg.CORSOrigins,
		AdminUserIDs:   cfg.AdminUserIDs,
		RateLimits: api.RateLimits{
			Auth:     middleware.RateLimitFromEnv("RATE_LIMIT_AUTH", middleware.AuthRateLimit),
			Preview:  middleware.RateLimitFromEnv("RATE_LIMIT_PREVIEW", middleware.PreviewRateLimit),
			Standard: middleware.RateLimitFromEnv("RATE_LIMIT_STANDARD", middleware.StandardRateLimit),
		},
		AuthService:        authService,
		ProfileService:     profileService,
		WorkoutService:     workoutService,
		BodyService:        bodyService,
		ProgressService:    progress.NewService(workoutService, bodyService),
		BackupService:      backup.NewService(profileService, workoutService, bodyService),
		FeatureFlagService: ffService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}

func mustConnect(ctx context.Context, log zerolog.Logger) *pgxpool.Pool {
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")
	return pool
}
