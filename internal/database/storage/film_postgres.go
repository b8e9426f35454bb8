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

const selectFilms = `
	SELECT f.film_id, f.name, f.description, f.release_date, f.duration, f.poster_url,
	       f.mpa_id, m.name AS mpa_name, m.description AS mpa_description
	FROM films AS f
	LEFT JOIN mpa AS m ON m.mpa_id = f.mpa_id
	`

type filmRow struct {
	ID             int64          `db:"film_id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	ReleaseDate    time.Time      `db:"release_date"`
	Duration       int            `db:"duration"`
	PosterURL      sql.NullString `db:"poster_url"`
	MpaID          sql.NullInt64  `db:"mpa_id"`
	MpaName        sql.NullString `db:"mpa_name"`
	MpaDescription sql.NullString `db:"mpa_description"`
}

func (r filmRow) toDomain() domain.Film {
	film := domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: dateOnly(r.ReleaseDate),
		Duration:    r.Duration,
		PosterURL:   r.PosterURL.String,
		Genres:      []domain.Genre{},
		Directors:   []domain.Director{},
		Likes:       map[int64]int{},
	}
	if r.MpaID.Valid {
		film.Mpa = &domain.Mpa{
			ID:          r.MpaID.Int64,
			Name:        r.MpaName.String,
			Description: r.MpaDescription.String,
		}
	}
	return film
}

type filmGenreRow struct {
	FilmID int64 `db:"film_id"`
	domain.Genre
}

type filmDirectorRow struct {
	FilmID int64 `db:"film_id"`
	domain.Director
}

type genreLink struct {
	FilmID  int64 `db:"film_id"`
	GenreID int64 `db:"genre_id"`
}

type directorLink struct {
	FilmID     int64 `db:"film_id"`
	DirectorID int64 `db:"director_id"`
}

// FilmStorage хранит фильмы и их связи с жанрами, режиссёрами и MPA.
type FilmStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewFilmStorage(db *sqlx.DB, logger *slog.Logger) *FilmStorage {
	return &FilmStorage{db: db, logger: logger}
}

// AddFilm сохраняет фильм и его жанры/режиссёров в одной транзакции
func (s *FilmStorage) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	start := time.Now()

	var id int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		q := tx.Rebind(`
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING film_id
		`)
		if err := tx.QueryRowxContext(ctx, q,
			film.Name, film.Description, dateOnly(film.ReleaseDate), film.Duration, mpaID(film),
		).Scan(&id); err != nil {
			return fmt.Errorf("insert film: %w", classify(err))
		}
		return replaceAssociations(ctx, tx, id, film)
	})
	if err != nil {
		s.logger.Error("failed to add film", "name", film.Name, "error", err)
		return nil, err
	}

	s.logger.Info("film added",
		"film_id", id,
		"genres", len(film.Genres),
		"directors", len(film.Directors),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return s.GetFilm(ctx, id)
}

// UpdateFilm перезаписывает атрибуты фильма и целиком заменяет наборы жанров и режиссёров.
// Для неизвестного id возвращает nil, nil и ничего не пишет.
func (s *FilmStorage) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	start := time.Now()

	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		q := tx.Rebind(`
		UPDATE films
		SET name = ?, description = ?, release_date = ?, duration = ?, mpa_id = ?
		WHERE film_id = ?
		`)
		res, err := tx.ExecContext(ctx, q,
			film.Name, film.Description, dateOnly(film.ReleaseDate), film.Duration, mpaID(film), film.ID,
		)
		if err != nil {
			return fmt.Errorf("update film: %w", classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update film rows affected: %w", err)
		}
		if n == 0 {
			return errNoRows
		}
		return replaceAssociations(ctx, tx, film.ID, film)
	})
	if errors.Is(err, errNoRows) {
		s.logger.Warn("film not found for update", "film_id", film.ID)
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to update film", "film_id", film.ID, "error", err)
		return nil, err
	}

	s.logger.Info("film updated",
		"film_id", film.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return s.GetFilm(ctx, film.ID)
}

var errNoRows = errors.New("no rows affected")

// replaceAssociations удаляет все связи фильма и вставляет новые наборы.
func replaceAssociations(ctx context.Context, tx *sqlx.Tx, filmID int64, film *domain.Film) error {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM film_genres WHERE film_id = ?`), filmID); err != nil {
		return fmt.Errorf("clear film genres: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM film_directors WHERE film_id = ?`), filmID); err != nil {
		return fmt.Errorf("clear film directors: %w", err)
	}

	if genres := domain.UniqueGenres(film.Genres); len(genres) > 0 {
		rows := make([]genreLink, 0, len(genres))
		for _, g := range genres {
			rows = append(rows, genreLink{FilmID: filmID, GenreID: g.ID})
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (:film_id, :genre_id)`, rows,
		); err != nil {
			return fmt.Errorf("insert film genres: %w", classify(err))
		}
	}

	if directors := domain.UniqueDirectors(film.Directors); len(directors) > 0 {
		rows := make([]directorLink, 0, len(directors))
		for _, d := range directors {
			rows = append(rows, directorLink{FilmID: filmID, DirectorID: d.ID})
		}
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO film_directors (film_id, director_id) VALUES (:film_id, :director_id)`, rows,
		); err != nil {
			return fmt.Errorf("insert film directors: %w", classify(err))
		}
	}
	return nil
}

func mpaID(film *domain.Film) sql.NullInt64 {
	if film.Mpa == nil {
		return sql.NullInt64{}
	}
	return nullableID(&film.Mpa.ID)
}

// GetFilm получает фильм со всеми связями по ID
func (s *FilmStorage) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	start := time.Now()

	var row filmRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(selectFilms+`WHERE f.film_id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("film not found by id", "film_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get film by id", "film_id", id, "error", err)
		return nil, fmt.Errorf("get film %d: %w", id, err)
	}

	films := []domain.Film{row.toDomain()}
	if err := s.hydrate(ctx, films); err != nil {
		s.logger.Error("failed to load film associations", "film_id", id, "error", err)
		return nil, err
	}

	s.logger.Debug("film retrieved by id",
		"film_id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &films[0], nil
}

// GetFilms возвращает все фильмы по возрастанию id
func (s *FilmStorage) GetFilms(ctx context.Context) ([]domain.Film, error) {
	start := time.Now()

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, selectFilms+`ORDER BY f.film_id`); err != nil {
		s.logger.Error("failed to list films", "error", err)
		return nil, fmt.Errorf("list films: %w", err)
	}

	films := make([]domain.Film, 0, len(rows))
	for _, r := range rows {
		films = append(films, r.toDomain())
	}
	if err := s.hydrate(ctx, films); err != nil {
		s.logger.Error("failed to load film associations", "error", err)
		return nil, err
	}

	s.logger.Info("listed films",
		"count", len(films),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return films, nil
}

// GetFilmsByIDs загружает фильмы в порядке переданных id. Отсутствующие id пропускаются.
func (s *FilmStorage) GetFilmsByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	if len(ids) == 0 {
		return []domain.Film{}, nil
	}

	q, args, err := sqlx.In(selectFilms+`WHERE f.film_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build films query: %w", err)
	}

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		s.logger.Error("failed to get films by ids", "count", len(ids), "error", err)
		return nil, fmt.Errorf("get films by ids: %w", err)
	}

	byID := make(map[int64]domain.Film, len(rows))
	for _, r := range rows {
		byID[r.ID] = r.toDomain()
	}
	films := make([]domain.Film, 0, len(rows))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			films = append(films, f)
			delete(byID, id)
		}
	}
	if err := s.hydrate(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// RemoveFilm удаляет фильм вместе со связями и оценками. Отсутствующий фильм не ошибка.
func (s *FilmStorage) RemoveFilm(ctx context.Context, id int64) error {
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, q := range []string{
			`DELETE FROM film_genres WHERE film_id = ?`,
			`DELETE FROM film_directors WHERE film_id = ?`,
			`DELETE FROM film_likes WHERE film_id = ?`,
			`DELETE FROM films WHERE film_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, tx.Rebind(q), id); err != nil {
				return fmt.Errorf("remove film %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to remove film", "film_id", id, "error", err)
		return err
	}
	s.logger.Info("film removed", "film_id", id)
	return nil
}

// SetPosterURL сохраняет ссылку на постер; false, если фильма нет.
func (s *FilmStorage) SetPosterURL(ctx context.Context, id int64, url string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE films SET poster_url = ? WHERE film_id = ?`), url, id)
	if err != nil {
		s.logger.Error("failed to set poster url", "film_id", id, "error", err)
		return false, fmt.Errorf("set poster url: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set poster url rows affected: %w", err)
	}
	return n > 0, nil
}

// GetFilmGenres возвращает жанры фильма по возрастанию id
func (s *FilmStorage) GetFilmGenres(ctx context.Context, filmID int64) ([]domain.Genre, error) {
	byFilm, err := s.loadGenres(ctx, []int64{filmID})
	if err != nil {
		return nil, err
	}
	if g := byFilm[filmID]; g != nil {
		return g, nil
	}
	return []domain.Genre{}, nil
}

// GetFilmDirectors возвращает режиссёров фильма по возрастанию id
func (s *FilmStorage) GetFilmDirectors(ctx context.Context, filmID int64) ([]domain.Director, error) {
	byFilm, err := s.loadDirectors(ctx, []int64{filmID})
	if err != nil {
		return nil, err
	}
	if d := byFilm[filmID]; d != nil {
		return d, nil
	}
	return []domain.Director{}, nil
}

// GetFilmLikes возвращает оценки фильма: user_id -> mark
func (s *FilmStorage) GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error) {
	byFilm, err := s.loadLikes(ctx, []int64{filmID})
	if err != nil {
		return nil, err
	}
	if l := byFilm[filmID]; l != nil {
		return l, nil
	}
	return map[int64]int{}, nil
}

// hydrate дочитывает жанры, режиссёров и оценки для набора фильмов тремя запросами.
func (s *FilmStorage) hydrate(ctx context.Context, films []domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}

	genres, err := s.loadGenres(ctx, ids)
	if err != nil {
		return err
	}
	directors, err := s.loadDirectors(ctx, ids)
	if err != nil {
		return err
	}
	likes, err := s.loadLikes(ctx, ids)
	if err != nil {
		return err
	}

	for i := range films {
		id := films[i].ID
		if g, ok := genres[id]; ok {
			films[i].Genres = g
		}
		if d, ok := directors[id]; ok {
			films[i].Directors = d
		}
		if l, ok := likes[id]; ok {
			films[i].Likes = l
		}
	}
	return nil
}

func (s *FilmStorage) loadGenres(ctx context.Context, ids []int64) (map[int64][]domain.Genre, error) {
	q, args, err := sqlx.In(`
	SELECT fg.film_id, g.genre_id, g.name
	FROM film_genres AS fg
	JOIN genres AS g ON g.genre_id = fg.genre_id
	WHERE fg.film_id IN (?)
	ORDER BY fg.film_id, g.genre_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("build film genres query: %w", err)
	}

	var rows []filmGenreRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select film genres: %w", err)
	}

	out := make(map[int64][]domain.Genre)
	for _, r := range rows {
		out[r.FilmID] = append(out[r.FilmID], r.Genre)
	}
	return out, nil
}

func (s *FilmStorage) loadDirectors(ctx context.Context, ids []int64) (map[int64][]domain.Director, error) {
	q, args, err := sqlx.In(`
	SELECT fd.film_id, d.director_id, d.name
	FROM film_directors AS fd
	JOIN directors AS d ON d.director_id = fd.director_id
	WHERE fd.film_id IN (?)
	ORDER BY fd.film_id, d.director_id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("build film directors query: %w", err)
	}

	var rows []filmDirectorRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select film directors: %w", err)
	}

	out := make(map[int64][]domain.Director)
	for _, r := range rows {
		out[r.FilmID] = append(out[r.FilmID], r.Director)
	}
	return out, nil
}

func (s *FilmStorage) loadLikes(ctx context.Context, ids []int64) (map[int64]map[int64]int, error) {
	q, args, err := sqlx.In(`SELECT film_id, user_id, mark FROM film_likes WHERE film_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build film likes query: %w", err)
	}

	var rows []domain.Like
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select film likes: %w", err)
	}

	out := make(map[int64]map[int64]int)
	for _, r := range rows {
		if out[r.FilmID] == nil {
			out[r.FilmID] = make(map[int64]int)
		}
		out[r.FilmID][r.UserID] = r.Mark
	}
	return out, nil
}
