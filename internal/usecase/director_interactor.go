package usecase

import (
	"context"
	"fmt"

	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/domain"
)

type directorUseCase struct {
	directors ports.DirectorStorage
}

func NewDirectorUseCase(directors ports.DirectorStorage) DirectorUseCase {
	return &directorUseCase{directors: directors}
}

func (uc *directorUseCase) AddDirector(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	created, err := uc.directors.AddDirector(ctx, director)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при добавлении режиссёра: %w", err)
	}
	return created, nil
}

func (uc *directorUseCase) UpdateDirector(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	updated, err := uc.directors.UpdateDirector(ctx, director)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении режиссёра %d: %w", director.ID, err)
	}
	return updated, nil
}

func (uc *directorUseCase) RemoveDirector(ctx context.Context, id int64) error {
	if err := uc.directors.RemoveDirector(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении режиссёра %d: %w", id, err)
	}
	return nil
}

func (uc *directorUseCase) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	director, err := uc.directors.GetDirector(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении режиссёра %d: %w", id, err)
	}
	return director, nil
}

func (uc *directorUseCase) GetAllDirectors(ctx context.Context) ([]domain.Director, error) {
	directors, err := uc.directors.GetAllDirectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка режиссёров: %w", err)
	}
	return directors, nil
}
