package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/GoArmGo/Filmorate/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// maxPosterSize ограничивает размер загружаемого постера.
const maxPosterSize = 10 << 20

// FilmHandler — обработчик HTTP-запросов каталога фильмов, оценок и рейтингов.
type FilmHandler struct {
	filmUseCase   usecase.FilmUseCase
	userUseCase   usecase.UserUseCase
	uploadLimiter chan struct{}
	validate      *validator.Validate
	logger        *slog.Logger
}

// NewFilmHandler создаёт новый экземпляр FilmHandler.
// limiter ограничивает число одновременных загрузок постеров.
func NewFilmHandler(
	films usecase.FilmUseCase,
	users usecase.UserUseCase,
	limiter chan struct{},
	logger *slog.Logger,
) *FilmHandler {
	return &FilmHandler{
		filmUseCase:   films,
		userUseCase:   users,
		uploadLimiter: limiter,
		validate:      newValidator(),
		logger:        logger,
	}
}

func (h *FilmHandler) decodeFilm(w http.ResponseWriter, r *http.Request) (*filmRequest, bool) {
	var req filmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return nil, false
	}
	req.normalize()
	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("film validation failed", "error", err)
		respondWithError(w, http.StatusBadRequest, validationMessage(err), h.logger)
		return nil, false
	}
	return &req, true
}

// AddFilm — POST /films
func (h *FilmHandler) AddFilm(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeFilm(w, r)
	if !ok {
		return
	}

	film, err := h.filmUseCase.AddFilm(r.Context(), req.toDomain())
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	if film == nil {
		// фильм удалили сразу после создания
		respondWithError(w, http.StatusNotFound, "созданный фильм не найден", h.logger)
		return
	}

	h.logger.Info("film created", "film_id", film.ID)
	respondWithJSON(w, http.StatusCreated, newFilmResponse(*film), h.logger)
}

// UpdateFilm — PUT /films
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeFilm(w, r)
	if !ok {
		return
	}
	if req.ID <= 0 {
		respondWithError(w, http.StatusBadRequest, "id фильма обязателен", h.logger)
		return
	}

	film, err := h.filmUseCase.UpdateFilm(r.Context(), req.toDomain())
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	if film == nil {
		respondNotFound(w, "фильм", req.ID, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, newFilmResponse(*film), h.logger)
}

// GetFilms — GET /films
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.filmUseCase.GetFilms(r.Context())
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFilmResponses(films), h.logger)
}

// GetFilm — GET /films/{id}
func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	film, err := h.filmUseCase.GetFilm(r.Context(), id)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	if film == nil {
		respondNotFound(w, "фильм", id, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFilmResponse(*film), h.logger)
}

// RemoveFilm — DELETE /films/{id}
func (h *FilmHandler) RemoveFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if err := h.filmUseCase.RemoveFilm(r.Context(), id); err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// likeTarget разбирает {id} и {userId} и проверяет, что фильм и пользователь существуют.
func (h *FilmHandler) likeTarget(w http.ResponseWriter, r *http.Request) (filmID, userID int64, ok bool) {
	filmID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return 0, 0, false
	}
	userID, err = pathID(r, "userId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return 0, 0, false
	}

	film, err := h.filmUseCase.GetFilm(r.Context(), filmID)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return 0, 0, false
	}
	if film == nil {
		respondNotFound(w, "фильм", filmID, h.logger)
		return 0, 0, false
	}
	user, err := h.userUseCase.GetUser(r.Context(), userID)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return 0, 0, false
	}
	if user == nil {
		respondNotFound(w, "пользователь", userID, h.logger)
		return 0, 0, false
	}
	return filmID, userID, true
}

// AddLike — PUT /films/{id}/like/{userId}?mark=; без mark ставится максимальная оценка
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	mark := domain.MaxMark
	if raw := strings.TrimSpace(r.URL.Query().Get("mark")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "параметр mark должен быть числом", h.logger)
			return
		}
		mark = v
	}
	if !domain.ValidMark(mark) {
		respondWithError(w, http.StatusBadRequest, domain.ErrInvalidMark.Error(), h.logger)
		return
	}

	filmID, userID, ok := h.likeTarget(w, r)
	if !ok {
		return
	}
	if err := h.filmUseCase.AddLike(r.Context(), filmID, userID, mark); err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveLike — DELETE /films/{id}/like/{userId}
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, ok := h.likeTarget(w, r)
	if !ok {
		return
	}
	if err := h.filmUseCase.RemoveLike(r.Context(), filmID, userID); err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPopularFilms — GET /films/popular?count=&genreId=&year=
func (h *FilmHandler) GetPopularFilms(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	genreID, err := queryInt(r, "genreId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	// нулевые и отрицательные genreId/year означают отсутствие фильтра
	query := domain.PopularQuery{GenreID: positive(genreID)}
	if count != nil {
		if *count <= 0 {
			respondWithError(w, http.StatusBadRequest, "параметр count должен быть положительным", h.logger)
			return
		}
		query.Limit = int(*count)
	}
	if year = positive(year); year != nil {
		y := int(*year)
		query.Year = &y
	}

	films, err := h.filmUseCase.GetPopularFilms(r.Context(), query)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFilmResponses(films), h.logger)
}

// GetDirectorFilms — GET /films/director/{directorId}?sortBy=year|likes
func (h *FilmHandler) GetDirectorFilms(w http.ResponseWriter, r *http.Request) {
	directorID, err := pathID(r, "directorId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = domain.SortByYear.String()
	}
	sortType, err := domain.ParseSortType(sortBy)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	films, err := h.filmUseCase.GetDirectorFilms(r.Context(), directorID, sortType)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFilmResponses(films), h.logger)
}

// UploadPoster — PUT /films/{id}/poster, тело запроса — сам файл
func (h *FilmHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	select {
	case h.uploadLimiter <- struct{}{}:
		defer func() { <-h.uploadLimiter }()
	case <-r.Context().Done():
		respondWithError(w, http.StatusServiceUnavailable, "слишком много одновременных загрузок", h.logger)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxPosterSize)
	film, err := h.filmUseCase.UploadPoster(r.Context(), id, body, r.Header.Get("Content-Type"))
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	if film == nil {
		respondNotFound(w, "фильм", id, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFilmResponse(*film), h.logger)
}
