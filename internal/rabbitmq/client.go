package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/Filmorate/internal/config"
	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
	"github.com/GoArmGo/Filmorate/internal/metrics"
	"github.com/goccy/go-json"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client представляет собой клиент RabbitMQ для событий ленты
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient подключается к RabbitMQ и объявляет очередь событий ленты
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Идемпотентно: очередь создаётся, только если её ещё нет
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("rabbitmq connected",
		"queue", q.Name,
		"messages", q.Messages,
	)
	return client, nil
}

// Close закрывает канал и соединение RabbitMQ
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.logger.Error("failed to close rabbitmq client", "error", err)
		return err
	}
	c.logger.Info("rabbitmq connection closed")
	return nil
}

// PublishFeedEvent публикует событие ленты в очередь.
// Реализует интерфейс ports.FeedEventPublisher.
func (c *Client) PublishFeedEvent(ctx context.Context, payload payloads.FeedEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.EventID.String(),
			Timestamp:    payload.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish feed event: %w", err)
	}

	c.logger.Debug("feed event published",
		"queue", c.queue.Name,
		"event_id", payload.EventID,
		"user_id", payload.UserID,
	)
	return nil
}

// StartConsumingFeedEvents начинает потребление событий из очереди в отдельной горутине.
// Реализует интерфейс ports.FeedEventConsumer.
func (c *Client) StartConsumingFeedEvents(ctx context.Context, handler func(context.Context, payloads.FeedEventPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack: подтверждаем вручную
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn("rabbitmq delivery channel closed, stopping consumer")
					return
				}
				handleDelivery(ctx, msg, handler, c.logger)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping rabbitmq consumer")
				return
			}
		}
	}()

	return nil
}

// handleDelivery: ack при успехе, nack с возвратом в очередь при ошибке обработки,
// nack без возврата для сообщений, которые не удалось разобрать.
func handleDelivery(ctx context.Context, msg amqp.Delivery, handler func(context.Context, payloads.FeedEventPayload) error, logger *slog.Logger) {
	var payload payloads.FeedEventPayload
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		logger.Error("failed to unmarshal feed event", "error", err, "body", string(msg.Body))
		if err := msg.Nack(false, false); err != nil {
			logger.Error("failed to nack malformed message", "error", err)
		}
		metrics.RecordFeedConsumed("reject")
		return
	}

	if err := handler(ctx, payload); err != nil {
		logger.Error("failed to process feed event", "event_id", payload.EventID, "error", err)
		if err := msg.Nack(false, true); err != nil {
			logger.Error("failed to nack message", "event_id", payload.EventID, "error", err)
		}
		metrics.RecordFeedConsumed("requeue")
		return
	}

	if err := msg.Ack(false); err != nil {
		logger.Error("failed to ack message", "event_id", payload.EventID, "error", err)
		return
	}
	metrics.RecordFeedConsumed("ack")
	logger.Debug("feed event processed", "event_id", payload.EventID)
}
