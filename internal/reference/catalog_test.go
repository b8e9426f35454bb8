package reference

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReferenceStorage struct {
	mock.Mock
}

func (m *mockReferenceStorage) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]domain.Genre)
	return genres, args.Error(1)
}

func (m *mockReferenceStorage) ListMpa(ctx context.Context) ([]domain.Mpa, error) {
	args := m.Called(ctx)
	ratings, _ := args.Get(0).([]domain.Mpa)
	return ratings, args.Error(1)
}

var (
	seedGenres = []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
	seedMpa = []domain.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	storage := new(mockReferenceStorage)
	storage.On("ListGenres", mock.Anything).Return(seedGenres, nil).Once()
	storage.On("ListMpa", mock.Anything).Return(seedMpa, nil).Once()

	c, err := Load(context.Background(), storage, discardLogger())
	require.NoError(t, err)
	storage.AssertExpectations(t)

	assert.Len(t, c.GetAllGenres(), 6)
	assert.Equal(t, "Комедия", c.GetGenreByID(1).Name)
	assert.Nil(t, c.GetGenreByID(7))

	assert.Len(t, c.GetAllMpa(), 5)
	assert.Equal(t, "G", c.GetMpaByID(1).Name)
	assert.Equal(t, "NC-17", c.GetMpaByID(5).Name)
	assert.Nil(t, c.GetMpaByID(0))
}

func TestLoadPropagatesStorageError(t *testing.T) {
	storage := new(mockReferenceStorage)
	storage.On("ListGenres", mock.Anything).Return(nil, errors.New("db down"))

	_, err := Load(context.Background(), storage, discardLogger())
	require.Error(t, err)
	storage.AssertNotCalled(t, "ListMpa", mock.Anything)
}

func TestCatalogIsImmutableFromOutside(t *testing.T) {
	c := New(seedGenres, seedMpa)

	all := c.GetAllGenres()
	all[0].Name = "changed"
	g := c.GetGenreByID(1)
	g.Name = "changed too"

	assert.Equal(t, "Комедия", c.GetAllGenres()[0].Name)
	assert.Equal(t, "Комедия", c.GetGenreByID(1).Name)
}
