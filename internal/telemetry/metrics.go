package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Plan sources.
const (
	SourcePreview = "preview"
	SourceProfile = "profile"
	SourceDigest  = "digest"
)

// DomainMetrics counts planner and log activity.
type DomainMetrics struct {
	plansGenerated  metric.Int64Counter
	logsWritten     metric.Int64Counter
	digestsComputed metric.Int64Counter
	digestDuration  metric.Float64Histogram
}

// NewDomainMetrics creates the domain instruments on meter.
func NewDomainMetrics(meter metric.Meter) (*DomainMetrics, error) {
	plansGenerated, err := meter.Int64Counter(
		"fitplan.plans.generated",
		metric.WithDescription("Plans generated, by source and split"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	logsWritten, err := meter.Int64Counter(
		"fitplan.logs.written",
		metric.WithDescription("Workout and body log entries written"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	digestsComputed, err := meter.Int64Counter(
		"fitplan.digests.computed",
		metric.WithDescription("Weekly check-in digests, by outcome"),
		metric.WithUnit("{digest}"),
	)
	if err != nil {
		return nil, err
	}

	digestDuration, err := meter.Float64Histogram(
		"fitplan.digest.run.duration",
		metric.WithDescription("Duration of a weekly digest run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &DomainMetrics{
		plansGenerated:  plansGenerated,
		logsWritten:     logsWritten,
		digestsComputed: digestsComputed,
		digestDuration:  digestDuration,
	}, nil
}

// RecordPlanGenerated counts a generated plan. Safe on a nil receiver.
func (m *DomainMetrics) RecordPlanGenerated(ctx context.Context, source, split string) {
	if m == nil {
		return
	}
	m.plansGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plan.source", source),
		attribute.String("plan.split", split),
	))
}

// RecordLogWritten counts a log entry of kind. Safe on a nil receiver.
func (m *DomainMetrics) RecordLogWritten(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.logsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("log.kind", kind)))
}

// RecordDigest counts one digest outcome. Safe on a nil receiver.
func (m *DomainMetrics) RecordDigest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.digestsComputed.Add(ctx, 1, metric.WithAttributes(attribute.String("digest.outcome", outcome)))
}

// RecordDigestRun records how long a digest run took. Safe on a nil receiver.
func (m *DomainMetrics) RecordDigestRun(ctx context.Context, seconds float64, users int) {
	if m == nil {
		return
	}
	m.digestDuration.Record(ctx, seconds, metric.WithAttributes(attribute.Int("digest.users", users)))
}
