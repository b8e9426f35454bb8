package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockFilmStorage struct{ mock.Mock }

func (m *mockFilmStorage) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	args := m.Called(ctx, film)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmStorage) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	args := m.Called(ctx, film)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmStorage) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmStorage) GetFilms(ctx context.Context) ([]domain.Film, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmStorage) GetFilmsByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	args := m.Called(ctx, ids)
	f, _ := args.Get(0).([]domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmStorage) RemoveFilm(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFilmStorage) SetPosterURL(ctx context.Context, id int64, url string) (bool, error) {
	args := m.Called(ctx, id, url)
	return args.Bool(0), args.Error(1)
}

func (m *mockFilmStorage) GetFilmGenres(ctx context.Context, filmID int64) ([]domain.Genre, error) {
	args := m.Called(ctx, filmID)
	g, _ := args.Get(0).([]domain.Genre)
	return g, args.Error(1)
}

func (m *mockFilmStorage) GetFilmDirectors(ctx context.Context, filmID int64) ([]domain.Director, error) {
	args := m.Called(ctx, filmID)
	d, _ := args.Get(0).([]domain.Director)
	return d, args.Error(1)
}

func (m *mockFilmStorage) GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error) {
	args := m.Called(ctx, filmID)
	l, _ := args.Get(0).(map[int64]int)
	return l, args.Error(1)
}

type mockLikeStorage struct{ mock.Mock }

func (m *mockLikeStorage) AddLike(ctx context.Context, filmID, userID int64, mark int) error {
	return m.Called(ctx, filmID, userID, mark).Error(0)
}

func (m *mockLikeStorage) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	args := m.Called(ctx, filmID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeStorage) GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error) {
	args := m.Called(ctx, filmID)
	l, _ := args.Get(0).(map[int64]int)
	return l, args.Error(1)
}

func (m *mockLikeStorage) GetUserLikedFilms(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *mockLikeStorage) GetLikeOverlaps(ctx context.Context, userID int64) (map[int64]int, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).(map[int64]int)
	return o, args.Error(1)
}

func (m *mockLikeStorage) GetFilmStats(ctx context.Context, filter domain.StatsFilter) ([]domain.FilmStats, error) {
	args := m.Called(ctx, filter)
	s, _ := args.Get(0).([]domain.FilmStats)
	return s, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishFeedEvent(ctx context.Context, payload payloads.FeedEventPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, reader, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) DeleteFile(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockDirectorStorage struct{ mock.Mock }

func (m *mockDirectorStorage) AddDirector(ctx context.Context, d *domain.Director) (*domain.Director, error) {
	args := m.Called(ctx, d)
	out, _ := args.Get(0).(*domain.Director)
	return out, args.Error(1)
}

func (m *mockDirectorStorage) UpdateDirector(ctx context.Context, d *domain.Director) (*domain.Director, error) {
	args := m.Called(ctx, d)
	out, _ := args.Get(0).(*domain.Director)
	return out, args.Error(1)
}

func (m *mockDirectorStorage) RemoveDirector(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDirectorStorage) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.Director)
	return out, args.Error(1)
}

func (m *mockDirectorStorage) GetAllDirectors(ctx context.Context) ([]domain.Director, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.Director)
	return out, args.Error(1)
}

type mockFeedStorage struct{ mock.Mock }

func (m *mockFeedStorage) SaveEvent(ctx context.Context, event domain.FeedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockFeedStorage) GetUserFeed(ctx context.Context, userID int64) ([]domain.FeedEvent, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]domain.FeedEvent)
	return out, args.Error(1)
}

type mockUserStorage struct{ mock.Mock }

func (m *mockUserStorage) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	out, _ := args.Get(0).(*domain.User)
	return out, args.Error(1)
}

func (m *mockUserStorage) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.User)
	return out, args.Error(1)
}
