// Package worker provides background job processing for FitPlan.
package worker

import (
	"os"
	"strconv"
	"time"
)

// Job types carried in Pub/Sub messages.
const (
	JobWeeklyDigest = "weekly_digest"
	JobHealthCheck  = "health_check"
)

// Config holds configuration for the digest worker.
type Config struct {
	// ProjectID enables Pub/Sub when set. Without it the worker runs on
	// the cron schedule and logs digests instead of publishing them.
	ProjectID string

	// Subscription receives job messages.
	Subscription string

	// DigestTopic receives computed digests.
	DigestTopic string

	// Schedule is a six-field cron spec (seconds first) or a descriptor
	// such as @weekly.
	Schedule string

	// Concurrency is the number of users digested in parallel.
	// Default: 4
	Concurrency int

	// Timeout bounds the work for a single user.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() Config {
	return Config{
		Subscription: "fitplan-jobs",
		DigestTopic:  "fitplan-digests",
		Schedule:     "0 0 8 * * 1",
		Concurrency:  4,
		Timeout:      30 * time.Second,
	}
}

// ConfigFromEnv loads the worker configuration from the environment.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ProjectID = os.Getenv("PUBSUB_PROJECT_ID")
	if v := os.Getenv("PUBSUB_SUBSCRIPTION"); v != "" {
		cfg.Subscription = v
	}
	if v := os.Getenv("PUBSUB_DIGEST_TOPIC"); v != "" {
		cfg.DigestTopic = v
	}
	if v := os.Getenv("DIGEST_SCHEDULE"); v != "" {
		cfg.Schedule = v
	}
	if n, err := strconv.Atoi(os.Getenv("DIGEST_WORKERS")); err == nil && n > 0 {
		cfg.Concurrency = n
	}
	if d, err := time.ParseDuration(os.Getenv("DIGEST_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// PubSubEnabled reports whether a Pub/Sub project is configured.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != ""
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Schedule == "" {
		c.Schedule = def.Schedule
	}
	return c
}
