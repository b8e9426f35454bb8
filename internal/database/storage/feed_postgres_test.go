package storage

import (
	"context"
	"testing"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedStorage_SaveIsIdempotentAndOrdered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	feed := NewFeedStorage(db, discardLogger())
	user := addUser(t, db, "reader")
	other := addUser(t, db, "other")

	first := domain.NewLikeEvent(user, 10, domain.OperationAdd)
	first.CreatedAt = time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	second := domain.NewLikeEvent(user, 10, domain.OperationRemove)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	require.NoError(t, feed.SaveEvent(ctx, second))
	require.NoError(t, feed.SaveEvent(ctx, first))
	require.NoError(t, feed.SaveEvent(ctx, first), "redelivered event is ignored")
	require.NoError(t, feed.SaveEvent(ctx, domain.NewLikeEvent(other, 11, domain.OperationAdd)))

	events, err := feed.GetUserFeed(ctx, user)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, domain.OperationAdd, events[0].Operation)
	assert.Equal(t, domain.EventTypeLike, events[0].EventType)
	assert.Equal(t, int64(10), events[0].EntityID)
	assert.Equal(t, second.ID, events[1].ID)

	none, err := feed.GetUserFeed(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
