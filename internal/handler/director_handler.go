package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/GoArmGo/Filmorate/internal/usecase"
	"github.com/go-playground/validator/v10"
)

// DirectorHandler — обработчик справочника режиссёров.
type DirectorHandler struct {
	directorUseCase usecase.DirectorUseCase
	validate        *validator.Validate
	logger          *slog.Logger
}

func NewDirectorHandler(uc usecase.DirectorUseCase, logger *slog.Logger) *DirectorHandler {
	return &DirectorHandler{directorUseCase: uc, validate: newValidator(), logger: logger}
}

func (h *DirectorHandler) decode(w http.ResponseWriter, r *http.Request) (*directorRequest, bool) {
	var req directorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return nil, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, validationMessage(err), h.logger)
		return nil, false
	}
	return &req, true
}

func (h *DirectorHandler) GetAllDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.directorUseCase.GetAllDirectors(r.Context())
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, directors, h.logger)
}

func (h *DirectorHandler) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	director, err := h.directorUseCase.GetDirector(r.Context(), id)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	if director == nil {
		respondNotFound(w, "режиссёр", id, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, director, h.logger)
}

func (h *DirectorHandler) AddDirector(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	director, err := h.directorUseCase.AddDirector(r.Context(), &domain.Director{Name: req.Name})
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, director, h.logger)
}

func (h *DirectorHandler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if req.ID <= 0 {
		respondWithError(w, http.StatusBadRequest, "id режиссёра обязателен", h.logger)
		return
	}
	director, err := h.directorUseCase.UpdateDirector(r.Context(), &domain.Director{ID: req.ID, Name: req.Name})
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	if director == nil {
		respondNotFound(w, "режиссёр", req.ID, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, director, h.logger)
}

func (h *DirectorHandler) RemoveDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if err := h.directorUseCase.RemoveDirector(r.Context(), id); err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
