package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/GoArmGo/Filmorate/internal/analytics"
	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/GoArmGo/Filmorate/internal/messaging/payloads"
	"github.com/GoArmGo/Filmorate/internal/metrics"
)

// filmUseCase implements FilmUseCase
type filmUseCase struct {
	films       ports.FilmStorage
	likes       ports.LikeStorage
	publisher   ports.FeedEventPublisher
	fileStorage ports.FileStorage
	logger      *slog.Logger
}

// NewFilmUseCase создает новый экземпляр FilmUseCase.
// fileStorage может быть nil: тогда загрузка постеров отключена.
func NewFilmUseCase(
	films ports.FilmStorage,
	likes ports.LikeStorage,
	publisher ports.FeedEventPublisher,
	fileStorage ports.FileStorage,
	logger *slog.Logger,
) FilmUseCase {
	return &filmUseCase{
		films:       films,
		likes:       likes,
		publisher:   publisher,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (uc *filmUseCase) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	created, err := uc.films.AddFilm(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при добавлении фильма: %w", err)
	}
	return created, nil
}

func (uc *filmUseCase) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	updated, err := uc.films.UpdateFilm(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при обновлении фильма %d: %w", film.ID, err)
	}
	return updated, nil
}

func (uc *filmUseCase) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	film, err := uc.films.GetFilm(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фильма %d: %w", id, err)
	}
	return film, nil
}

func (uc *filmUseCase) GetFilms(ctx context.Context) ([]domain.Film, error) {
	films, err := uc.films.GetFilms(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка фильмов: %w", err)
	}
	return films, nil
}

func (uc *filmUseCase) RemoveFilm(ctx context.Context, id int64) error {
	if err := uc.films.RemoveFilm(ctx, id); err != nil {
		return fmt.Errorf("usecase: ошибка при удалении фильма %d: %w", id, err)
	}
	return nil
}

// AddLike сохраняет оценку. Событие ленты публикуется только после успешной записи;
// сбой публикации логируется и не отменяет оценку.
func (uc *filmUseCase) AddLike(ctx context.Context, filmID, userID int64, mark int) error {
	if !domain.ValidMark(mark) {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidMark, mark)
	}
	if err := uc.likes.AddLike(ctx, filmID, userID, mark); err != nil {
		return fmt.Errorf("usecase: ошибка при сохранении оценки фильма %d: %w", filmID, err)
	}
	uc.publish(ctx, domain.NewLikeEvent(userID, filmID, domain.OperationAdd))
	return nil
}

func (uc *filmUseCase) RemoveLike(ctx context.Context, filmID, userID int64) error {
	removed, err := uc.likes.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при удалении оценки фильма %d: %w", filmID, err)
	}
	// событие в ленту только если оценка действительно была
	if removed {
		uc.publish(ctx, domain.NewLikeEvent(userID, filmID, domain.OperationRemove))
	}
	return nil
}

func (uc *filmUseCase) publish(ctx context.Context, event domain.FeedEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishFeedEvent(ctx, payloads.FromEvent(event)); err != nil {
		uc.logger.Warn("failed to publish feed event",
			"event_id", event.ID,
			"user_id", event.UserID,
			"film_id", event.EntityID,
			"operation", event.Operation,
			"error", err,
		)
		return
	}
	metrics.RecordFeedPublished(string(event.Operation))
}

func (uc *filmUseCase) GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error) {
	likes, err := uc.likes.GetFilmLikes(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении оценок фильма %d: %w", filmID, err)
	}
	return likes, nil
}

func (uc *filmUseCase) GetPopularFilms(ctx context.Context, query domain.PopularQuery) (films []domain.Film, err error) {
	start := time.Now()
	defer func() { metrics.ObserveAnalytics(metrics.ViewPopular, time.Since(start), err) }()

	stats, err := uc.likes.GetFilmStats(ctx, domain.StatsFilter{GenreID: query.GenreID, Year: query.Year})
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при расчёте популярных фильмов: %w", err)
	}

	films, err = uc.films.GetFilmsByIDs(ctx, analytics.TopPopular(stats, query.Limit))
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при загрузке популярных фильмов: %w", err)
	}

	uc.logger.Debug("popular films computed",
		"limit", query.Limit,
		"candidates", len(stats),
		"returned", len(films),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return films, nil
}

func (uc *filmUseCase) GetDirectorFilms(ctx context.Context, directorID int64, sortType domain.SortType) (films []domain.Film, err error) {
	start := time.Now()
	defer func() { metrics.ObserveAnalytics(metrics.ViewDirectorFilms, time.Since(start), err) }()

	stats, err := uc.likes.GetFilmStats(ctx, domain.StatsFilter{DirectorID: &directorID})
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при расчёте фильмов режиссёра %d: %w", directorID, err)
	}

	ids := analytics.FilmIDs(analytics.SortStats(stats, sortType))
	films, err = uc.films.GetFilmsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при загрузке фильмов режиссёра %d: %w", directorID, err)
	}

	uc.logger.Debug("director films computed",
		"director_id", directorID,
		"sort_by", sortType.String(),
		"returned", len(films),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return films, nil
}

// GetFilmsRecommendation: все пользователи с максимальным пересечением оценок
// вносят свои фильмы в общий набор кандидатов.
func (uc *filmUseCase) GetFilmsRecommendation(ctx context.Context, userID int64) (films []domain.Film, err error) {
	start := time.Now()
	defer func() { metrics.ObserveAnalytics(metrics.ViewRecommendation, time.Since(start), err) }()

	overlaps, err := uc.likes.GetLikeOverlaps(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске похожих пользователей для %d: %w", userID, err)
	}
	similar := analytics.MostSimilar(overlaps)
	if len(similar) == 0 {
		return []domain.Film{}, nil
	}

	own, err := uc.likes.GetUserLikedFilms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении оценок пользователя %d: %w", userID, err)
	}

	liked := make([][]int64, 0, len(similar))
	for _, other := range similar {
		ids, err := uc.likes.GetUserLikedFilms(ctx, other)
		if err != nil {
			return nil, fmt.Errorf("usecase: ошибка при получении оценок пользователя %d: %w", other, err)
		}
		liked = append(liked, ids)
	}

	films, err = uc.films.GetFilmsByIDs(ctx, analytics.UnseenFilms(own, liked))
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при загрузке рекомендаций для %d: %w", userID, err)
	}

	uc.logger.Debug("recommendations computed",
		"user_id", userID,
		"similar_users", len(similar),
		"returned", len(films),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return films, nil
}

// UploadPoster кладёт файл под ключ posters/<id> и возвращает обновлённый фильм.
// Для неизвестного фильма возвращает nil, nil и ничего не загружает.
func (uc *filmUseCase) UploadPoster(ctx context.Context, filmID int64, reader io.Reader, contentType string) (*domain.Film, error) {
	if uc.fileStorage == nil {
		return nil, domain.ErrPosterStorageDisabled
	}

	film, err := uc.films.GetFilm(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении фильма %d: %w", filmID, err)
	}
	if film == nil {
		return nil, nil
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("posters/%d", filmID)
	url, err := uc.fileStorage.UploadFile(ctx, key, reader, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка загрузки постера фильма %d: %w", filmID, err)
	}

	found, err := uc.films.SetPosterURL(ctx, filmID, url)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении ссылки на постер фильма %d: %w", filmID, err)
	}
	if !found {
		// фильм удалили между чтением и записью ссылки
		if delErr := uc.fileStorage.DeleteFile(ctx, key); delErr != nil {
			uc.logger.Warn("failed to delete orphan poster", "key", key, "error", delErr)
		}
		return nil, nil
	}

	uc.logger.Info("poster uploaded", "film_id", filmID, "url", url)
	film.PosterURL = url
	return film, nil
}
