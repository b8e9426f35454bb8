package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/Filmorate/internal/usecase"
)

// ReferenceHandler отдаёт справочники жанров и рейтингов MPA.
type ReferenceHandler struct {
	catalog usecase.ReferenceCatalog
	logger  *slog.Logger
}

func NewReferenceHandler(catalog usecase.ReferenceCatalog, logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{catalog: catalog, logger: logger}
}

func (h *ReferenceHandler) GetAllGenres(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.GetAllGenres(), h.logger)
}

func (h *ReferenceHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	genre := h.catalog.GetGenreByID(id)
	if genre == nil {
		respondNotFound(w, "жанр", id, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, genre, h.logger)
}

func (h *ReferenceHandler) GetAllMpa(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.GetAllMpa(), h.logger)
}

func (h *ReferenceHandler) GetMpa(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	mpa := h.catalog.GetMpaByID(id)
	if mpa == nil {
		respondNotFound(w, "рейтинг MPA", id, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, mpa, h.logger)
}
