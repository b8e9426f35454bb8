package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirectorUseCase(t *testing.T) {
	storage := new(mockDirectorStorage)
	uc := NewDirectorUseCase(storage)
	ctx := context.Background()

	storage.On("GetDirector", mock.Anything, int64(1)).Return(&domain.Director{ID: 1, Name: "Балабанов"}, nil)
	storage.On("GetDirector", mock.Anything, int64(2)).Return(nil, nil)
	storage.On("RemoveDirector", mock.Anything, int64(3)).Return(errors.New("db down"))

	got, err := uc.GetDirector(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Балабанов", got.Name)

	got, err = uc.GetDirector(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, uc.RemoveDirector(ctx, 3))
	storage.AssertExpectations(t)
}

func TestUserUseCase(t *testing.T) {
	storage := new(mockUserStorage)
	uc := NewUserUseCase(storage)
	user := &domain.User{Login: "trinity", Email: "t@matrix.io"}

	storage.On("AddUser", mock.Anything, user).Return(&domain.User{ID: 1, Login: "trinity"}, nil)
	storage.On("GetUser", mock.Anything, int64(9)).Return(nil, nil)

	created, err := uc.AddUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	missing, err := uc.GetUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, missing)
	storage.AssertExpectations(t)
}

func TestFeedUseCase(t *testing.T) {
	storage := new(mockFeedStorage)
	uc := NewFeedUseCase(storage, discardLogger())
	event := domain.NewLikeEvent(1, 2, domain.OperationAdd)

	storage.On("SaveEvent", mock.Anything, event).Return(nil)
	storage.On("GetUserFeed", mock.Anything, int64(1)).Return([]domain.FeedEvent{event}, nil)

	require.NoError(t, uc.SaveEvent(context.Background(), event))
	events, err := uc.GetUserFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.FeedEvent{event}, events)
	storage.AssertExpectations(t)
}
