package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// JobMessage is the payload of a job trigger message.
type JobMessage struct {
	JobType string `json:"job_type"`
}

// Dispatcher runs jobs named by trigger messages.
type Dispatcher struct {
	job    *DigestJob
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher for the digest job.
func NewDispatcher(job *DigestJob, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{job: job, logger: logger}
}

// UnknownJobError is returned for job types the worker does not handle.
type UnknownJobError struct {
	JobType string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job type %q", e.JobType)
}

// Handle parses data and runs the job it names.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) error {
	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("parsing message: %w", err)
	}

	switch msg.JobType {
	case JobWeeklyDigest:
		result, err := d.job.Run(ctx)
		if err != nil {
			return err
		}
		// Retry the whole run when most digests failed.
		if result.Failed > result.Published {
			return fmt.Errorf("too many digest failures: %d/%d", result.Failed, result.Users)
		}
		return nil
	case JobHealthCheck:
		d.logger.Debug().Str("publish_breaker", d.job.guard.State().String()).Msg("health check passed")
		return nil
	default:
		return &UnknownJobError{JobType: msg.JobType}
	}
}

// PubSubHandler receives job messages from a Pub/Sub subscription.
type PubSubHandler struct {
	subscriber       *pubsub.Subscriber
	subscriptionName string
	dispatcher       *Dispatcher
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	Client           *pubsub.Client
	SubscriptionName string
	Dispatcher       *Dispatcher
	Logger           zerolog.Logger
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(cfg PubSubConfig) *PubSubHandler {
	subscriber := cfg.Client.Subscriber(cfg.SubscriptionName)

	// Digest runs are long; keep few in flight and extend leases.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 2
	subscriber.ReceiveSettings.MaxExtension = 30 * time.Minute

	return &PubSubHandler{
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		dispatcher:       cfg.Dispatcher,
		logger:           cfg.Logger,
	}
}

// Start begins processing Pub/Sub messages. It blocks until ctx ends.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	err := h.dispatcher.Handle(ctx, msg.Data)
	var unknown *UnknownJobError
	switch {
	case err == nil:
		logger.Info().Dur("duration", time.Since(startTime)).Msg("job completed successfully")
		msg.Ack()
	case errors.As(err, &unknown):
		logger.Warn().Str("job_type", unknown.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
	default:
		logger.Error().Err(err).Msg("job failed")
		msg.Nack()
	}
}

// PubSubPublisher publishes digests as JSON to a topic.
type PubSubPublisher struct {
	publisher *pubsub.Publisher
}

// NewPubSubPublisher creates a publisher for topic.
func NewPubSubPublisher(client *pubsub.Client, topic string) *PubSubPublisher {
	return &PubSubPublisher{publisher: client.Publisher(topic)}
}

// Publish sends d and waits for the server to acknowledge it.
func (p *PubSubPublisher) Publish(ctx context.Context, d *Digest) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding digest: %w", err)
	}

	res := p.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"user_id": d.UserID,
			"week":    d.Week,
		},
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("publishing digest: %w", err)
	}
	return nil
}

// Stop flushes pending messages.
func (p *PubSubPublisher) Stop() {
	p.publisher.Stop()
}

// LogPublisher writes digests to the log. Used when Pub/Sub is not configured.
type LogPublisher struct {
	Logger zerolog.Logger
}

// Publish logs d.
func (p LogPublisher) Publish(_ context.Context, d *Digest) error {
	evt := p.Logger.Info().
		Str("user_id", d.UserID).
		Str("week", d.Week).
		Str("split", string(d.Split)).
		Int("planned", d.PlannedSessions).
		Int("completed", d.CompletedSessions).
		Int("minutes", d.Minutes).
		Float64("adherence", d.Adherence)
	if d.WeightChangeKg != nil {
		evt = evt.Float64("weight_change_kg", *d.WeightChangeKg)
	}
	evt.Msg("weekly digest")
	return nil
}
