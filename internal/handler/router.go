package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers собирает обработчики всех ресурсов API.
type Handlers struct {
	Films      *FilmHandler
	Directors  *DirectorHandler
	References *ReferenceHandler
	Users      *UserHandler
}

// NewRouter регистрирует маршруты API и общие middleware.
func NewRouter(h Handlers, requestTimeout time.Duration, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Route("/films", func(r chi.Router) {
			r.Get("/", h.Films.GetFilms)
			r.Post("/", h.Films.AddFilm)
			r.Put("/", h.Films.UpdateFilm)
			// статические пути регистрируются раньше /{id}
			r.Get("/popular", h.Films.GetPopularFilms)
			r.Get("/director/{directorId}", h.Films.GetDirectorFilms)
			r.Get("/{id}", h.Films.GetFilm)
			r.Delete("/{id}", h.Films.RemoveFilm)
			r.Put("/{id}/like/{userId}", h.Films.AddLike)
			r.Delete("/{id}/like/{userId}", h.Films.RemoveLike)
			r.Put("/{id}/poster", h.Films.UploadPoster)
		})

		r.Route("/directors", func(r chi.Router) {
			r.Get("/", h.Directors.GetAllDirectors)
			r.Post("/", h.Directors.AddDirector)
			r.Put("/", h.Directors.UpdateDirector)
			r.Get("/{id}", h.Directors.GetDirector)
			r.Delete("/{id}", h.Directors.RemoveDirector)
		})

		r.Get("/genres", h.References.GetAllGenres)
		r.Get("/genres/{id}", h.References.GetGenre)
		r.Get("/mpa", h.References.GetAllMpa)
		r.Get("/mpa/{id}", h.References.GetMpa)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.Users.AddUser)
			r.Get("/{id}", h.Users.GetUser)
			r.Get("/{id}/recommendations", h.Users.GetRecommendations)
			r.Get("/{id}/feed", h.Users.GetFeed)
		})
	})

	return r
}
