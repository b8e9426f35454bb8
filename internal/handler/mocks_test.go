package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockFilmUseCase struct{ mock.Mock }

func (m *mockFilmUseCase) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	args := m.Called(ctx, film)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	args := m.Called(ctx, film)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) GetFilms(ctx context.Context) ([]domain.Film, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) RemoveFilm(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFilmUseCase) AddLike(ctx context.Context, filmID, userID int64, mark int) error {
	return m.Called(ctx, filmID, userID, mark).Error(0)
}

func (m *mockFilmUseCase) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return m.Called(ctx, filmID, userID).Error(0)
}

func (m *mockFilmUseCase) GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error) {
	args := m.Called(ctx, filmID)
	l, _ := args.Get(0).(map[int64]int)
	return l, args.Error(1)
}

func (m *mockFilmUseCase) GetPopularFilms(ctx context.Context, query domain.PopularQuery) ([]domain.Film, error) {
	args := m.Called(ctx, query)
	f, _ := args.Get(0).([]domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) GetDirectorFilms(ctx context.Context, directorID int64, sortType domain.SortType) ([]domain.Film, error) {
	args := m.Called(ctx, directorID, sortType)
	f, _ := args.Get(0).([]domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) GetFilmsRecommendation(ctx context.Context, userID int64) ([]domain.Film, error) {
	args := m.Called(ctx, userID)
	f, _ := args.Get(0).([]domain.Film)
	return f, args.Error(1)
}

func (m *mockFilmUseCase) UploadPoster(ctx context.Context, filmID int64, reader io.Reader, contentType string) (*domain.Film, error) {
	args := m.Called(ctx, filmID, reader, contentType)
	f, _ := args.Get(0).(*domain.Film)
	return f, args.Error(1)
}

type mockDirectorUseCase struct{ mock.Mock }

func (m *mockDirectorUseCase) AddDirector(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	args := m.Called(ctx, director)
	d, _ := args.Get(0).(*domain.Director)
	return d, args.Error(1)
}

func (m *mockDirectorUseCase) UpdateDirector(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	args := m.Called(ctx, director)
	d, _ := args.Get(0).(*domain.Director)
	return d, args.Error(1)
}

func (m *mockDirectorUseCase) RemoveDirector(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDirectorUseCase) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*domain.Director)
	return d, args.Error(1)
}

func (m *mockDirectorUseCase) GetAllDirectors(ctx context.Context) ([]domain.Director, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]domain.Director)
	return d, args.Error(1)
}

type mockUserUseCase struct{ mock.Mock }

func (m *mockUserUseCase) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type mockFeedUseCase struct{ mock.Mock }

func (m *mockFeedUseCase) SaveEvent(ctx context.Context, event domain.FeedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockFeedUseCase) GetUserFeed(ctx context.Context, userID int64) ([]domain.FeedEvent, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).([]domain.FeedEvent)
	return e, args.Error(1)
}
