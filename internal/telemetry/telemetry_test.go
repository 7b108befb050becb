package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/fitplan/fitplan/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("ENVIRONMENT", "staging")

	cfg := telemetry.ConfigFromEnv("fitplan-api", "1.2.3")

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "fitplan-api", cfg.ServiceName)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")
	t.Setenv("OTEL_METRIC_EXPORT_INTERVAL", "")

	cfg := telemetry.ConfigFromEnv("fitplan-api", "dev")

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRatio)
	assert.Equal(t, 15*time.Second, cfg.MetricInterval)
}

func TestConfigFromEnv_ExportTuning(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
	t.Setenv("OTEL_METRIC_EXPORT_INTERVAL", "60000")

	cfg := telemetry.ConfigFromEnv("fitplan-worker", "dev")

	assert.False(t, cfg.Insecure)
	assert.Equal(t, 0.25, cfg.SampleRatio)
	assert.Equal(t, time.Minute, cfg.MetricInterval)
}

func TestDomainMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	ctx := context.Background()

	m, err := telemetry.NewDomainMetrics(mp.Meter("test"))
	require.NoError(t, err)

	m.RecordPlanGenerated(ctx, telemetry.SourcePreview, "ppl")
	m.RecordPlanGenerated(ctx, telemetry.SourceProfile, "full_body")
	m.RecordLogWritten(ctx, "workout")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, metrics := range rm.ScopeMetrics[0].Metrics {
		sum, ok := metrics.Data.(metricdata.Sum[int64])
		if !ok {
			continue
		}
		for _, dp := range sum.DataPoints {
			totals[metrics.Name] += dp.Value
		}
	}
	assert.Equal(t, int64(2), totals["fitplan.plans.generated"])
	assert.Equal(t, int64(1), totals["fitplan.logs.written"])
}

func TestDomainMetrics_NilSafe(t *testing.T) {
	var m *telemetry.DomainMetrics
	assert.NotPanics(t, func() {
		m.RecordPlanGenerated(context.Background(), telemetry.SourcePreview, "ppl")
		m.RecordLogWritten(context.Background(), "body")
		m.RecordDigest(context.Background(), "published")
		m.RecordDigestRun(context.Background(), 1.5, 3)
	})
}
