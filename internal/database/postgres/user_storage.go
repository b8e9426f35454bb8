package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// AddUser сохраняет пользователя; id назначает база
func (s *GormUserStorage) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()

	created := *user
	created.ID = 0
	if created.Name == "" {
		created.Name = created.Login
	}
	if !created.Birthday.IsZero() {
		b := created.Birthday
		created.Birthday = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	}

	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		s.logger.Error("failed to create user", "login", user.Login, "error", err)
		return nil, fmt.Errorf("ошибка при создании пользователя с GORM: %w", err)
	}

	s.logger.Info("user created",
		"user_id", created.ID,
		"login", created.Login,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &created, nil
}

// GetUser получает пользователя по ID; nil, nil если его нет
func (s *GormUserStorage) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("user not found by id", "user_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя по ID с помощью GORM: %w", err)
	}
	return &user, nil
}
