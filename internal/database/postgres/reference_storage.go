package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"gorm.io/gorm"
)

// GormReferenceStorage читает справочники жанров и MPA с помощью GORM
type GormReferenceStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormReferenceStorage(db *gorm.DB, logger *slog.Logger) *GormReferenceStorage {
	return &GormReferenceStorage{db: db, logger: logger}
}

// ListGenres возвращает все жанры по возрастанию id
func (s *GormReferenceStorage) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	start := time.Now()

	genres := []domain.Genre{}
	if err := s.db.WithContext(ctx).Order("genre_id").Find(&genres).Error; err != nil {
		s.logger.Error("failed to list genres", "error", err)
		return nil, fmt.Errorf("ошибка при получении жанров с помощью GORM: %w", err)
	}

	s.logger.Debug("genres loaded", "count", len(genres), "duration_ms", time.Since(start).Milliseconds())
	return genres, nil
}

// ListMpa возвращает все рейтинги MPA по возрастанию id
func (s *GormReferenceStorage) ListMpa(ctx context.Context) ([]domain.Mpa, error) {
	start := time.Now()

	ratings := []domain.Mpa{}
	if err := s.db.WithContext(ctx).Order("mpa_id").Find(&ratings).Error; err != nil {
		s.logger.Error("failed to list mpa ratings", "error", err)
		return nil, fmt.Errorf("ошибка при получении рейтингов MPA с помощью GORM: %w", err)
	}

	s.logger.Debug("mpa ratings loaded", "count", len(ratings), "duration_ms", time.Since(start).Milliseconds())
	return ratings, nil
}
