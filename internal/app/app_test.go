package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFeed struct {
	mu     sync.Mutex
	saved  []domain.FeedEvent
	failOn uuid.UUID
}

func (f *fakeFeed) SaveEvent(_ context.Context, e domain.FeedEvent) error {
	if e.ID == f.failOn {
		return errors.New("db down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, e)
	return nil
}

func (f *fakeFeed) GetUserFeed(context.Context, int64) ([]domain.FeedEvent, error) {
	return nil, nil
}

type fakeConsumer struct {
	handler func(context.Context, payloads.FeedEventPayload) error
	err     error
}

func (c *fakeConsumer) StartConsumingFeedEvents(_ context.Context, h func(context.Context, payloads.FeedEventPayload) error) error {
	c.handler = h
	return c.err
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestFeedEventHandler_SavesEvent(t *testing.T) {
	feed := &fakeFeed{}
	event := domain.NewLikeEvent(3, 7, domain.OperationRemove)

	err := feedEventHandler(feed, discardLogger())(context.Background(), payloads.FromEvent(event))
	require.NoError(t, err)
	require.Len(t, feed.saved, 1)
	assert.Equal(t, event.ID, feed.saved[0].ID)
	assert.Equal(t, domain.OperationRemove, feed.saved[0].Operation)
}

func TestFeedEventHandler_PropagatesError(t *testing.T) {
	event := domain.NewLikeEvent(3, 7, domain.OperationAdd)
	feed := &fakeFeed{failOn: event.ID}

	err := feedEventHandler(feed, discardLogger())(context.Background(), payloads.FromEvent(event))
	assert.Error(t, err)
}

func TestRunWorker_RequiresConsumer(t *testing.T) {
	err := runWorker(context.Background(), &fakeFeed{}, nil, discardLogger())
	assert.ErrorIs(t, err, errNoConsumer)
}

func TestRunWorker_StopsOnCancel(t *testing.T) {
	consumer := &fakeConsumer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, runWorker(ctx, &fakeFeed{}, consumer, discardLogger()))
	assert.NotNil(t, consumer.handler)
}

func TestRunWorker_ConsumerFailure(t *testing.T) {
	consumer := &fakeConsumer{err: errors.New("channel closed")}
	err := runWorker(context.Background(), &fakeFeed{}, consumer, discardLogger())
	assert.Error(t, err)
}

func TestServe_GracefulShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, listener, router, discardLogger()) }()

	url := "http://" + listener.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusTeapot
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApp_RunUnknownModeClosesResources(t *testing.T) {
	var order []string
	a := NewApp(nil, discardLogger(), nil, &fakeFeed{}, nil,
		closerFunc(func() error { order = append(order, "db"); return nil }),
		closerFunc(func() error { order = append(order, "rabbit"); return errors.New("already closed") }),
	)

	err := a.Run(context.Background(), "batch")
	assert.Error(t, err)
	assert.Equal(t, []string{"rabbit", "db"}, order)
	assert.NoError(t, a.Shutdown())
}
