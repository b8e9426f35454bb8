// Package messaging содержит публикацию событий ленты без брокера.
package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
)

// DirectPublisher сохраняет события ленты сразу в хранилище.
// Используется, когда RabbitMQ не настроен.
type DirectPublisher struct {
	feed   ports.FeedStorage
	logger *slog.Logger
}

func NewDirectPublisher(feed ports.FeedStorage, logger *slog.Logger) *DirectPublisher {
	return &DirectPublisher{feed: feed, logger: logger}
}

func (p *DirectPublisher) PublishFeedEvent(ctx context.Context, payload payloads.FeedEventPayload) error {
	if err := p.feed.SaveEvent(ctx, payload.ToEvent()); err != nil {
		return fmt.Errorf("direct publish feed event %s: %w", payload.EventID, err)
	}
	p.logger.Debug("feed event stored directly", "event_id", payload.EventID, "user_id", payload.UserID)
	return nil
}
