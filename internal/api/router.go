// Package api provides the HTTP API for FitPlan.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/handler"
	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/auth"
	"github.com/fitplan/fitplan/internal/backup"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/featureflags"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/progress"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/workout"
)

// RateLimits holds per-category rate limits. Zero values use the middleware defaults.
type RateLimits struct {
	Auth     middleware.RateLimitConfig
	Preview  middleware.RateLimitConfig
	Standard middleware.RateLimitConfig
}

func (l RateLimits) withDefaults() RateLimits {
	if l.Auth.RequestLimit == 0 {
		l.Auth = middleware.AuthRateLimit
	}
	if l.Preview.RequestLimit == 0 {
		l.Preview = middleware.PreviewRateLimit
	}
	if l.Standard.RequestLimit == 0 {
		l.Standard = middleware.StandardRateLimit
	}
	return l
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	DomainMetrics  *telemetry.DomainMetrics
	DB             handler.Pinger
	RequireTLS     bool
	AllowedOrigins []string
	AdminUserIDs   []string
	RateLimits     RateLimits

	AuthService        *auth.Service
	ProfileService     *profile.Service
	WorkoutService     *workout.Service
	BodyService        *body.Service
	ProgressService    *progress.Service
	BackupService      *backup.Service
	FeatureFlagService *featureflags.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "fitplan-api"
	}
	limits := cfg.RateLimits.withDefaults()
	log := cfg.Logger

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(log))   // Structured logging
	r.Use(middleware.Recovery(log)) // Panic recovery
	r.Use(chimiddleware.RealIP)     // Real IP extraction
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))
	r.Use(middleware.RequireJSON)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.FeatureFlagService)
	metadataHandler := handler.NewMetadataHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, log)
	meHandler := handler.NewMeHandler(cfg.AuthService, cfg.ProfileService, cfg.WorkoutService, cfg.BodyService, log)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService, log)
	planHandler := handler.NewPlanHandler(cfg.ProfileService, cfg.FeatureFlagService, cfg.DomainMetrics, log)
	workoutHandler := handler.NewWorkoutHandler(cfg.WorkoutService, cfg.DomainMetrics, log)
	bodyHandler := handler.NewBodyHandler(cfg.BodyService, cfg.DomainMetrics, log)
	progressHandler := handler.NewProgressHandler(cfg.ProgressService, cfg.FeatureFlagService, log)
	backupHandler := handler.NewBackupHandler(cfg.BackupService, cfg.FeatureFlagService, log)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService, log)

	authMiddleware := middleware.Auth(cfg.AuthService)
	authRateLimit := middleware.RateLimitByIP(limits.Auth)
	previewRateLimit := middleware.RateLimitByIP(limits.Preview)
	standardRateLimit := middleware.RateLimitByIP(limits.Standard)
	userRateLimit := middleware.RateLimitByUser(limits.Standard)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Stateless planner endpoints (public)
		r.Group(func(r chi.Router) {
			r.Use(previewRateLimit)
			r.Post("/plans/preview", planHandler.PreviewPlan)
			r.Post("/energy", planHandler.EstimateEnergy)
		})
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/catalog/{equipment}", planHandler.GetCatalog)
			r.Get("/metadata/enums", metadataHandler.GetEnums)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(userRateLimit)
			r.Get("/", meHandler.GetMe)
			r.Delete("/", meHandler.DeleteMe)

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpsertProfile)
			r.Delete("/profile", profileHandler.DeleteProfile)

			r.Get("/plan", planHandler.GetMyPlan)
			r.Get("/progress", progressHandler.GetProgress)

			r.Route("/workouts", func(r chi.Router) {
				r.Get("/", workoutHandler.ListWorkouts)
				r.Post("/", workoutHandler.CreateWorkout)
				r.Delete("/{workoutId}", workoutHandler.DeleteWorkout)
			})
			r.Route("/body", func(r chi.Router) {
				r.Get("/", bodyHandler.ListEntries)
				r.Post("/", bodyHandler.CreateEntry)
				r.Delete("/{entryId}", bodyHandler.DeleteEntry)
			})

			r.Get("/export", backupHandler.Export)
			r.Post("/import", backupHandler.Import)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireUsers(cfg.AdminUserIDs))
			r.Use(standardRateLimit)

			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})
		})
	})

	return r
}
