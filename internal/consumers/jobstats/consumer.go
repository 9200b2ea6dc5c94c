// Package jobstats keeps wizard completion counts in step with job events
package jobstats

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/domain"
	"gitlab.com/wizardhub.net/internal/static/errs"
)

type Recorder interface {
	RecordCompletedJob(ctx context.Context, workerID string) error
}

type Consumer struct {
	recorder Recorder
	logger   primary.Logger
}

func NewConsumer(recorder Recorder, logger primary.Logger) *Consumer {
	return &Consumer{
		recorder: recorder,
		logger:   logger,
	}
}

// Run handles deliveries until ctx is done or the channel closes
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	c.logger.Info("Job stats consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Job stats consumer stopped")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				c.logger.Warn("RabbitMQ delivery channel closed")
				return
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRetry
)

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var err error
	switch c.handle(ctx, delivery.Body, delivery.Redelivered) {
	case outcomeAck:
		err = delivery.Ack(false)
	case outcomeDrop:
		err = delivery.Nack(false, false)
	case outcomeRetry:
		err = delivery.Nack(false, true)
	}
	if err != nil {
		c.logger.Error("Failed to acknowledge message", "deliveryTag", delivery.DeliveryTag, "error", err)
	}
}

// handle counts completed jobs. Other events are acknowledged untouched.
func (c *Consumer) handle(ctx context.Context, body []byte, redelivered bool) outcome {
	var event domain.JobEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Error("Failed to parse job event", "error", err, "body", string(body))
		return outcomeDrop
	}

	if event.Type != domain.JobEventStatusChanged || event.Status != domain.JobStatusCompleted {
		return outcomeAck
	}
	if event.WorkerID == "" {
		c.logger.Error("Job event without worker", "jobId", event.JobID)
		return outcomeDrop
	}

	if err := c.recorder.RecordCompletedJob(ctx, event.WorkerID); err != nil {
		if errs.IsNotFound(err) {
			c.logger.Warn("Completed job for unknown worker", "jobId", event.JobID, "workerId", event.WorkerID)
			return outcomeDrop
		}
		c.logger.Error("Failed to record completed job", "jobId", event.JobID, "error", err)
		if redelivered {
			return outcomeDrop
		}
		return outcomeRetry
	}

	c.logger.Info("Completed job recorded", "jobId", event.JobID, "workerId", event.WorkerID)
	return outcomeAck
}
