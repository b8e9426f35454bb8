package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
	"github.com/GoArmGo/Filmorate/internal/usecase"
)

var errNoConsumer = errors.New("режим worker требует настроенного RabbitMQ (RABBITMQ_URL)")

// feedEventHandler сохраняет событие из очереди в ленту пользователя
func feedEventHandler(feedUseCase usecase.FeedUseCase, logger *slog.Logger) func(context.Context, payloads.FeedEventPayload) error {
	return func(ctx context.Context, payload payloads.FeedEventPayload) error {
		logger.Debug("processing feed event",
			"event_id", payload.EventID,
			"user_id", payload.UserID,
			"operation", payload.Operation,
		)
		if err := feedUseCase.SaveEvent(ctx, payload.ToEvent()); err != nil {
			return fmt.Errorf("save feed event %s: %w", payload.EventID, err)
		}
		return nil
	}
}

// runWorker запускает потребителя RabbitMQ и блокируется до отмены ctx
func runWorker(
	ctx context.Context,
	feedUseCase usecase.FeedUseCase,
	consumer ports.FeedEventConsumer,
	logger *slog.Logger,
) error {
	if consumer == nil {
		return errNoConsumer
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingFeedEvents(workerCtx, feedEventHandler(feedUseCase, logger)); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	logger.Info("worker started, waiting for feed events")

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}
