package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/domain"
)

type feedUseCase struct {
	feed   ports.FeedStorage
	logger *slog.Logger
}

func NewFeedUseCase(feed ports.FeedStorage, logger *slog.Logger) FeedUseCase {
	return &feedUseCase{feed: feed, logger: logger}
}

func (uc *feedUseCase) SaveEvent(ctx context.Context, event domain.FeedEvent) error {
	if err := uc.feed.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("usecase: ошибка при сохранении события %s: %w", event.ID, err)
	}
	uc.logger.Debug("feed event stored", "event_id", event.ID, "user_id", event.UserID)
	return nil
}

func (uc *feedUseCase) GetUserFeed(ctx context.Context, userID int64) ([]domain.FeedEvent, error) {
	events, err := uc.feed.GetUserFeed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении ленты пользователя %d: %w", userID, err)
	}
	return events, nil
}
