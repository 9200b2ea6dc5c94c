package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	"gitlab.com/wizardhub.net/internal/domain"
)

var _ secondary.JobEventPublisher = (*Client)(nil)

const contentTypeJSON = "application/json"

// Client publishes job events to a topic exchange and consumes them from one bound queue
type Client struct {
	config      *config.RabbitMQConfig
	conn        *amqp.Connection
	channel     *amqp.Channel
	logger      primary.Logger
	isConnected bool
}

// NewClient creates a new RabbitMQ client
func NewClient(cfg *config.RabbitMQConfig, logger primary.Logger) (*Client, error) {
	client := &Client{
		config: cfg,
		logger: logger,
	}

	if err := client.connect(); err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ client: %w", err)
	}

	return client, nil
}

// connect establishes connection to RabbitMQ with retry logic
func (c *Client) connect() error {
	attempts := max(c.config.RetryAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		c.logger.Info("Connecting to RabbitMQ", "attempt", attempt, "maxAttempts", attempts)

		c.conn, err = amqp.Dial(c.config.Url)
		if err == nil {
			break
		}

		c.logger.Error("Failed to connect to RabbitMQ", "attempt", attempt, "error", err)
		if attempt < attempts {
			time.Sleep(c.config.RetryInterval)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
	}

	c.channel, err = c.conn.Channel()
	if err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to create channel: %w", err)
	}

	if err := c.setup(); err != nil {
		c.channel.Close()
		c.conn.Close()
		return fmt.Errorf("failed to setup exchange and queue: %w", err)
	}

	c.isConnected = true
	c.logger.Info("RabbitMQ client initialized", "exchange", c.config.Exchange, "queue", c.config.Queue)
	return nil
}

// setup declares exchange, queue, and bindings
func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.config.Exchange,     // name
		c.config.ExchangeType, // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.config.Queue, // name
		true,           // durable
		false,          // auto-delete
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.config.Queue,      // queue name
		c.config.RoutingKey, // routing key
		c.config.Exchange,   // exchange
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

// eventMessage turns a job event into a persistent publishing routed by event type
func eventMessage(event domain.JobEvent) (string, amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", amqp.Publishing{}, fmt.Errorf("failed to marshal job event: %w", err)
	}
	return string(event.Type), amqp.Publishing{
		ContentType:  contentTypeJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.JobID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
	}, nil
}

// PublishJobEvent publishes event with retries
func (c *Client) PublishJobEvent(ctx context.Context, event domain.JobEvent) error {
	routingKey, msg, err := eventMessage(event)
	if err != nil {
		return err
	}
	return c.publishWithRetry(ctx, routingKey, msg)
}

// backoffDelay doubles base for every failed attempt
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(uint(1)<<uint(attempt))
}

func (c *Client) publishWithRetry(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if !c.isConnected {
		return fmt.Errorf("not connected to RabbitMQ")
	}

	maxRetries := c.config.PublishRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	baseDelay := c.config.PublishRetryDelay
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := c.channel.PublishWithContext(
			ctx,
			c.config.Exchange, // exchange
			routingKey,        // routing key
			false,             // mandatory
			false,             // immediate
			msg,
		)
		if err == nil {
			c.logger.Debug("Message published to RabbitMQ", "routingKey", routingKey, "attempt", attempt+1)
			return nil
		}
		lastErr = err

		if attempt < maxRetries {
			delay := backoffDelay(baseDelay, attempt)
			c.logger.Warn("Failed to publish message to RabbitMQ, retrying",
				"attempt", attempt+1, "retryAfter", delay, "error", err)

			select {
			case <-ctx.Done():
				return fmt.Errorf("failed to publish message: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	c.logger.Error("Failed to publish message to RabbitMQ after all retries", "attempts", maxRetries+1, "error", lastErr)
	return fmt.Errorf("failed to publish message after %d attempts: %w", maxRetries+1, lastErr)
}

// Consume starts consuming messages from the queue with manual acknowledgement
func (c *Client) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	if !c.isConnected {
		return nil, fmt.Errorf("not connected to RabbitMQ")
	}

	if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	messages, err := c.channel.Consume(
		c.config.Queue, // queue
		consumerTag,    // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume messages: %w", err)
	}

	c.logger.Info("Started consuming messages from RabbitMQ", "queue", c.config.Queue, "consumerTag", consumerTag)
	return messages, nil
}

// Close closes the RabbitMQ connection
func (c *Client) Close() error {
	c.isConnected = false

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("Failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("Failed to close RabbitMQ connection", "error", err)
			return err
		}
	}

	c.logger.Info("RabbitMQ connection closed")
	return nil
}
