package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// maxJSONBody ограничивает размер JSON-тела запроса.
const maxJSONBody = 1 << 20

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload any, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithUseCaseError переводит ошибку бизнес-логики в HTTP-статус.
func respondWithUseCaseError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respondWithError(w, http.StatusRequestEntityTooLarge, "файл слишком большой", logger)
	case errors.Is(err, domain.ErrInvalidMark):
		respondWithError(w, http.StatusBadRequest, domain.ErrInvalidMark.Error(), logger)
	case errors.Is(err, domain.ErrConstraintViolation):
		respondWithError(w, http.StatusBadRequest, "запрос ссылается на несуществующие данные", logger)
	case errors.Is(err, domain.ErrPosterStorageDisabled):
		respondWithError(w, http.StatusServiceUnavailable, domain.ErrPosterStorageDisabled.Error(), logger)
	default:
		logger.Error("request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "внутренняя ошибка сервера", logger)
	}
}

func respondNotFound(w http.ResponseWriter, what string, id int64, logger *slog.Logger) {
	respondWithError(w, http.StatusNotFound, fmt.Sprintf("%s с id %d не найден", what, id), logger)
}

// decodeJSON читает тело запроса в dst; неизвестные поля игнорируются.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		return fmt.Errorf("не удалось прочитать тело запроса: %w", err)
	}
	if len(body) == 0 {
		return errors.New("пустое тело запроса")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("некорректный JSON: %w", err)
	}
	return nil
}

// pathID разбирает положительный целочисленный параметр маршрута.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("параметр %s должен быть положительным числом, получено %q", name, raw)
	}
	return id, nil
}

// positive отбрасывает значения <= 0.
func positive(v *int64) *int64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// queryInt разбирает необязательный целочисленный параметр запроса; nil если параметра нет.
func queryInt(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("параметр %s должен быть числом, получено %q", name, raw)
	}
	return &v, nil
}
