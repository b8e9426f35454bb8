package payloads

import (
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/google/uuid"
)

// FeedEventPayload — сообщение очереди о действии пользователя.
type FeedEventPayload struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    int64     `json:"user_id"`
	EntityID  int64     `json:"entity_id"`
	EventType string    `json:"event_type"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

func FromEvent(e domain.FeedEvent) FeedEventPayload {
	return FeedEventPayload{
		EventID:   e.ID,
		UserID:    e.UserID,
		EntityID:  e.EntityID,
		EventType: string(e.EventType),
		Operation: string(e.Operation),
		Timestamp: e.CreatedAt,
	}
}

func (p FeedEventPayload) ToEvent() domain.FeedEvent {
	return domain.FeedEvent{
		ID:        p.EventID,
		UserID:    p.UserID,
		EntityID:  p.EntityID,
		EventType: domain.EventType(p.EventType),
		Operation: domain.Operation(p.Operation),
		CreatedAt: p.Timestamp,
	}
}
