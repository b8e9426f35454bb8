package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const EventTypeLike EventType = "LIKE"

type Operation string

const (
	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
)

// FeedEvent — запись ленты действий пользователя,
// соответствует таблице feed_events в бд
type FeedEvent struct {
	ID        uuid.UUID `json:"eventId" db:"event_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	EntityID  int64     `json:"entityId" db:"entity_id"`
	EventType EventType `json:"eventType" db:"event_type"`
	Operation Operation `json:"operation" db:"operation"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

// NewLikeEvent создаёт событие ленты для оценки фильма.
func NewLikeEvent(userID, filmID int64, op Operation) FeedEvent {
	return FeedEvent{
		ID:        uuid.New(),
		UserID:    userID,
		EntityID:  filmID,
		EventType: EventTypeLike,
		Operation: op,
		CreatedAt: time.Now().UTC(),
	}
}
