package usecase

import (
	"context"
	"fmt"

	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/domain"
)

type userUseCase struct {
	users ports.UserStorage
}

func NewUserUseCase(users ports.UserStorage) UserUseCase {
	return &userUseCase{users: users}
}

func (uc *userUseCase) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := uc.users.AddUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя: %w", err)
	}
	return created, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.users.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя %d: %w", id, err)
	}
	return user, nil
}
