package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/GoArmGo/Filmorate/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// UserHandler — пользователи, их рекомендации и лента событий.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	filmUseCase usecase.FilmUseCase
	feedUseCase usecase.FeedUseCase
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewUserHandler(
	users usecase.UserUseCase,
	films usecase.FilmUseCase,
	feed usecase.FeedUseCase,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: users,
		filmUseCase: films,
		feedUseCase: feed,
		validate:    newValidator(),
		logger:      logger,
	}
}

// AddUser — POST /users
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("user validation failed", "error", err)
		respondWithError(w, http.StatusBadRequest, validationMessage(err), h.logger)
		return
	}

	user, err := h.userUseCase.AddUser(r.Context(), req.toDomain())
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, newUserResponse(*user), h.logger)
}

// GetUser — GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.existingUser(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, newUserResponse(*user), h.logger)
}

// GetRecommendations — GET /users/{id}/recommendations
func (h *UserHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	user, ok := h.existingUser(w, r)
	if !ok {
		return
	}
	films, err := h.filmUseCase.GetFilmsRecommendation(r.Context(), user.ID)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFilmResponses(films), h.logger)
}

// GetFeed — GET /users/{id}/feed
func (h *UserHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	user, ok := h.existingUser(w, r)
	if !ok {
		return
	}
	events, err := h.feedUseCase.GetUserFeed(r.Context(), user.ID)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, newFeedResponses(events), h.logger)
}

// existingUser разбирает {id} и отвечает 404, если такого пользователя нет.
func (h *UserHandler) existingUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return nil, false
	}
	user, err := h.userUseCase.GetUser(r.Context(), id)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return nil, false
	}
	if user == nil {
		respondNotFound(w, "пользователь", id, h.logger)
		return nil, false
	}
	return user, true
}
