package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/jmoiron/sqlx"
)

// FeedStorage хранит ленту событий пользователей
type FeedStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewFeedStorage(db *sqlx.DB, logger *slog.Logger) *FeedStorage {
	return &FeedStorage{db: db, logger: logger}
}

// SaveEvent сохраняет событие; повторная доставка того же event_id игнорируется
func (s *FeedStorage) SaveEvent(ctx context.Context, event domain.FeedEvent) error {
	query := `
	INSERT INTO feed_events (event_id, user_id, entity_id, event_type, operation, created_at)
	VALUES (:event_id, :user_id, :entity_id, :event_type, :operation, :created_at)
	ON CONFLICT (event_id) DO NOTHING
	`
	if _, err := s.db.NamedExecContext(ctx, query, event); err != nil {
		s.logger.Error("failed to save feed event", "event_id", event.ID, "user_id", event.UserID, "error", err)
		return fmt.Errorf("insert feed event: %w", classify(err))
	}
	s.logger.Debug("feed event saved", "event_id", event.ID, "user_id", event.UserID)
	return nil
}

func (s *FeedStorage) GetUserFeed(ctx context.Context, userID int64) ([]domain.FeedEvent, error) {
	events := []domain.FeedEvent{}
	q := s.db.Rebind(`
	SELECT event_id, user_id, entity_id, event_type, operation, created_at
	FROM feed_events
	WHERE user_id = ?
	ORDER BY created_at, event_id
	`)
	if err := s.db.SelectContext(ctx, &events, q, userID); err != nil {
		s.logger.Error("failed to get user feed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("select feed events: %w", err)
	}
	return events, nil
}
