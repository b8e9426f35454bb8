package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/jmoiron/sqlx"
)

type DirectorStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewDirectorStorage(db *sqlx.DB, logger *slog.Logger) *DirectorStorage {
	return &DirectorStorage{db: db, logger: logger}
}

// AddDirector сохраняет режиссёра и возвращает его с присвоенным id
func (s *DirectorStorage) AddDirector(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	start := time.Now()

	created := domain.Director{Name: director.Name}
	q := s.db.Rebind(`INSERT INTO directors (name) VALUES (?) RETURNING director_id`)
	if err := s.db.QueryRowxContext(ctx, q, director.Name).Scan(&created.ID); err != nil {
		s.logger.Error("failed to add director", "name", director.Name, "error", err)
		return nil, fmt.Errorf("insert director: %w", classify(err))
	}

	s.logger.Info("director added",
		"director_id", created.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &created, nil
}

// UpdateDirector переименовывает режиссёра; nil, nil если id неизвестен
func (s *DirectorStorage) UpdateDirector(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE directors SET name = ? WHERE director_id = ?`), director.Name, director.ID)
	if err != nil {
		s.logger.Error("failed to update director", "director_id", director.ID, "error", err)
		return nil, fmt.Errorf("update director: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update director rows affected: %w", err)
	}
	if n == 0 {
		s.logger.Warn("director not found for update", "director_id", director.ID)
		return nil, nil
	}

	s.logger.Info("director updated", "director_id", director.ID)
	return &domain.Director{ID: director.ID, Name: director.Name}, nil
}

// RemoveDirector удаляет режиссёра и его связи с фильмами; сами фильмы остаются.
// Удаление отсутствующего режиссёра не считается ошибкой.
func (s *DirectorStorage) RemoveDirector(ctx context.Context, id int64) error {
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM film_directors WHERE director_id = ?`), id); err != nil {
			return fmt.Errorf("remove director links: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM directors WHERE director_id = ?`), id); err != nil {
			return fmt.Errorf("remove director: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to remove director", "director_id", id, "error", err)
		return err
	}
	s.logger.Info("director removed", "director_id", id)
	return nil
}

// GetDirector получает режиссёра по ID
func (s *DirectorStorage) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	var d domain.Director
	err := s.db.GetContext(ctx, &d, s.db.Rebind(`SELECT director_id, name FROM directors WHERE director_id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("director not found by id", "director_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get director", "director_id", id, "error", err)
		return nil, fmt.Errorf("get director %d: %w", id, err)
	}
	return &d, nil
}

func (s *DirectorStorage) GetAllDirectors(ctx context.Context) ([]domain.Director, error) {
	directors := []domain.Director{}
	if err := s.db.SelectContext(ctx, &directors, `SELECT director_id, name FROM directors ORDER BY director_id`); err != nil {
		s.logger.Error("failed to list directors", "error", err)
		return nil, fmt.Errorf("list directors: %w", err)
	}
	return directors, nil
}
