package worker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitplan/fitplan/internal/worker"
)

func TestDefaultConfig(t *testing.T) {
	cfg := worker.DefaultConfig()

	assert.Equal(t, "fitplan-jobs", cfg.Subscription)
	assert.Equal(t, "fitplan-digests", cfg.DigestTopic)
	assert.Equal(t, "0 0 8 * * 1", cfg.Schedule)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.PubSubEnabled())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PUBSUB_PROJECT_ID", "fitplan-prod")
	t.Setenv("PUBSUB_SUBSCRIPTION", "jobs-sub")
	t.Setenv("PUBSUB_DIGEST_TOPIC", "digests")
	t.Setenv("DIGEST_SCHEDULE", "@weekly")
	t.Setenv("DIGEST_WORKERS", "8")
	t.Setenv("DIGEST_TIMEOUT", "1m")

	cfg := worker.ConfigFromEnv()

	assert.True(t, cfg.PubSubEnabled())
	assert.Equal(t, "jobs-sub", cfg.Subscription)
	assert.Equal(t, "digests", cfg.DigestTopic)
	assert.Equal(t, "@weekly", cfg.Schedule)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestConfigFromEnv_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("PUBSUB_PROJECT_ID", "")
	t.Setenv("DIGEST_WORKERS", "-2")
	t.Setenv("DIGEST_TIMEOUT", "soon")

	cfg := worker.ConfigFromEnv()

	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}
