package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/jmoiron/sqlx"
)

// LikeStorage — реестр оценок фильмов пользователями.
type LikeStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewLikeStorage(db *sqlx.DB, logger *slog.Logger) *LikeStorage {
	return &LikeStorage{db: db, logger: logger}
}

// AddLike ставит или перезаписывает оценку пары (фильм, пользователь) одним запросом.
// Существование фильма и пользователя проверяют внешние ключи.
func (s *LikeStorage) AddLike(ctx context.Context, filmID, userID int64, mark int) error {
	if !domain.ValidMark(mark) {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidMark, mark)
	}

	q := s.db.Rebind(`
	INSERT INTO film_likes (film_id, user_id, mark)
	VALUES (?, ?, ?)
	ON CONFLICT (film_id, user_id) DO UPDATE SET mark = excluded.mark
	`)
	if _, err := s.db.ExecContext(ctx, q, filmID, userID, mark); err != nil {
		s.logger.Error("failed to add like", "film_id", filmID, "user_id", userID, "error", err)
		return fmt.Errorf("upsert like: %w", classify(err))
	}

	s.logger.Info("like saved", "film_id", filmID, "user_id", userID, "mark", mark)
	return nil
}

// RemoveLike удаляет оценку и сообщает, была ли она; отсутствие оценки не ошибка
func (s *LikeStorage) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	q := s.db.Rebind(`DELETE FROM film_likes WHERE film_id = ? AND user_id = ?`)
	res, err := s.db.ExecContext(ctx, q, filmID, userID)
	if err != nil {
		s.logger.Error("failed to remove like", "film_id", filmID, "user_id", userID, "error", err)
		return false, fmt.Errorf("delete like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete like rows affected: %w", err)
	}
	s.logger.Info("like removed", "film_id", filmID, "user_id", userID, "rows", n)
	return n > 0, nil
}

func (s *LikeStorage) GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error) {
	var rows []domain.Like
	q := s.db.Rebind(`SELECT film_id, user_id, mark FROM film_likes WHERE film_id = ?`)
	if err := s.db.SelectContext(ctx, &rows, q, filmID); err != nil {
		return nil, fmt.Errorf("select film likes: %w", err)
	}
	likes := make(map[int64]int, len(rows))
	for _, r := range rows {
		likes[r.UserID] = r.Mark
	}
	return likes, nil
}

// GetUserLikedFilms возвращает id фильмов, оценённых пользователем, по возрастанию
func (s *LikeStorage) GetUserLikedFilms(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	q := s.db.Rebind(`SELECT film_id FROM film_likes WHERE user_id = ? ORDER BY film_id`)
	if err := s.db.SelectContext(ctx, &ids, q, userID); err != nil {
		return nil, fmt.Errorf("select user likes: %w", err)
	}
	return ids, nil
}

type overlapRow struct {
	UserID int64 `db:"user_id"`
	Shared int   `db:"shared"`
}

func (s *LikeStorage) GetLikeOverlaps(ctx context.Context, userID int64) (map[int64]int, error) {
	start := time.Now()

	var rows []overlapRow
	q := s.db.Rebind(`
	SELECT other.user_id, COUNT(*) AS shared
	FROM film_likes AS mine
	JOIN film_likes AS other ON other.film_id = mine.film_id AND other.user_id <> mine.user_id
	WHERE mine.user_id = ?
	GROUP BY other.user_id
	`)
	if err := s.db.SelectContext(ctx, &rows, q, userID); err != nil {
		s.logger.Error("failed to compute like overlaps", "user_id", userID, "error", err)
		return nil, fmt.Errorf("select like overlaps: %w", err)
	}

	overlaps := make(map[int64]int, len(rows))
	for _, r := range rows {
		overlaps[r.UserID] = r.Shared
	}

	s.logger.Debug("like overlaps computed",
		"user_id", userID,
		"users", len(overlaps),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return overlaps, nil
}

// GetFilmStats считает среднюю оценку и число оценок по каждому фильму, прошедшему фильтр.
// Фильмы без оценок тоже возвращаются: avg_mark = 0, marks_count = 0.
func (s *LikeStorage) GetFilmStats(ctx context.Context, filter domain.StatsFilter) ([]domain.FilmStats, error) {
	start := time.Now()

	var (
		conditions []string
		args       []any
	)
	if filter.GenreID != nil {
		conditions = append(conditions,
			`EXISTS (SELECT 1 FROM film_genres AS fg WHERE fg.film_id = f.film_id AND fg.genre_id = ?)`)
		args = append(args, *filter.GenreID)
	}
	if filter.Year != nil {
		from := time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		conditions = append(conditions, `f.release_date >= ? AND f.release_date < ?`)
		args = append(args, from, from.AddDate(1, 0, 0))
	}
	if filter.DirectorID != nil {
		conditions = append(conditions,
			`EXISTS (SELECT 1 FROM film_directors AS fd WHERE fd.film_id = f.film_id AND fd.director_id = ?)`)
		args = append(args, *filter.DirectorID)
	}

	q := `
	SELECT f.film_id, f.release_date,
	       COALESCE(AVG(l.mark), 0) AS avg_mark,
	       COUNT(l.user_id) AS marks_count
	FROM films AS f
	LEFT JOIN film_likes AS l ON l.film_id = f.film_id
	`
	if len(conditions) > 0 {
		q += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	q += `GROUP BY f.film_id, f.release_date`

	stats := []domain.FilmStats{}
	if err := s.db.SelectContext(ctx, &stats, s.db.Rebind(q), args...); err != nil {
		s.logger.Error("failed to compute film stats", "error", err)
		return nil, fmt.Errorf("select film stats: %w", err)
	}
	for i := range stats {
		stats[i].ReleaseDate = dateOnly(stats[i].ReleaseDate)
	}

	s.logger.Debug("film stats computed",
		"films", len(stats),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stats, nil
}
