package ports

import (
	"context"

	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
)

// FeedEventPublisher публикует события ленты
// Этот интерфейс используется usecase-слоем после изменения оценок
type FeedEventPublisher interface {
	PublishFeedEvent(ctx context.Context, payload payloads.FeedEventPayload) error
}

// FeedEventConsumer определяет методы для потребления событий ленты
// используется воркером для сохранения событий в бд
type FeedEventConsumer interface {
	// StartConsumingFeedEvents начинает прослушивание очереди
	// принимает функцию-обработчик, которая вызывается для каждого полученного сообщения
	StartConsumingFeedEvents(ctx context.Context, handler func(context.Context, payloads.FeedEventPayload) error) error
}
