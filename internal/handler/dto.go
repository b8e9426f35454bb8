package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// firstFilmDate — дата первого публичного киносеанса; более ранние даты выхода не принимаются.
var firstFilmDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// newValidator регистрирует правила, которых нет в стандартном наборе validator.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cinemaera", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil && !d.Before(firstFilmDate)
	})
	_ = v.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil && !d.After(time.Now().UTC())
	})
	return v
}

// validationMessage превращает ошибки validator в короткое описание для клиента.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: нарушено правило %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

type idRef struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type filmRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate string  `json:"releaseDate" validate:"required,cinemaera"`
	Duration    int     `json:"duration" validate:"gt=0"`
	Mpa         *idRef  `json:"mpa"`
	Genres      []idRef `json:"genres" validate:"dive"`
	Directors   []idRef `json:"directors" validate:"dive"`
}

func (r *filmRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r filmRequest) toDomain() *domain.Film {
	release, _ := time.Parse(dateLayout, r.ReleaseDate)
	film := &domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: release,
		Duration:    r.Duration,
	}
	if r.Mpa != nil {
		film.Mpa = &domain.Mpa{ID: r.Mpa.ID}
	}
	for _, g := range r.Genres {
		film.Genres = append(film.Genres, domain.Genre{ID: g.ID})
	}
	for _, d := range r.Directors {
		film.Directors = append(film.Directors, domain.Director{ID: d.ID})
	}
	return film
}

type filmResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ReleaseDate string            `json:"releaseDate"`
	Duration    int               `json:"duration"`
	Mpa         *domain.Mpa       `json:"mpa"`
	Genres      []domain.Genre    `json:"genres"`
	Directors   []domain.Director `json:"directors"`
	Likes       map[int64]int     `json:"likes"`
	PosterURL   string            `json:"posterUrl,omitempty"`
}

func newFilmResponse(f domain.Film) filmResponse {
	resp := filmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate.Format(dateLayout),
		Duration:    f.Duration,
		Mpa:         f.Mpa,
		Genres:      f.Genres,
		Directors:   f.Directors,
		Likes:       f.Likes,
		PosterURL:   f.PosterURL,
	}
	if resp.Genres == nil {
		resp.Genres = []domain.Genre{}
	}
	if resp.Directors == nil {
		resp.Directors = []domain.Director{}
	}
	if resp.Likes == nil {
		resp.Likes = map[int64]int{}
	}
	return resp
}

func newFilmResponses(films []domain.Film) []filmResponse {
	out := make([]filmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, newFilmResponse(f))
	}
	return out
}

type directorRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

type userRequest struct {
	Login    string `json:"login" validate:"required,excludesall= "`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Birthday string `json:"birthday" validate:"omitempty,pastdate"`
}

func (r userRequest) toDomain() *domain.User {
	u := &domain.User{
		Login: strings.TrimSpace(r.Login),
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
	}
	if r.Birthday != "" {
		u.Birthday, _ = time.Parse(dateLayout, r.Birthday)
	}
	return u
}

type userResponse struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Birthday string `json:"birthday,omitempty"`
}

func newUserResponse(u domain.User) userResponse {
	resp := userResponse{ID: u.ID, Login: u.Login, Name: u.Name, Email: u.Email}
	if !u.Birthday.IsZero() {
		resp.Birthday = u.Birthday.Format(dateLayout)
	}
	return resp
}

type feedEventResponse struct {
	EventID   string `json:"eventId"`
	UserID    int64  `json:"userId"`
	EntityID  int64  `json:"entityId"`
	EventType string `json:"eventType"`
	Operation string `json:"operation"`
	Timestamp int64  `json:"timestamp"`
}

func newFeedResponses(events []domain.FeedEvent) []feedEventResponse {
	out := make([]feedEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, feedEventResponse{
			EventID:   e.ID.String(),
			UserID:    e.UserID,
			EntityID:  e.EntityID,
			EventType: string(e.EventType),
			Operation: string(e.Operation),
			Timestamp: e.CreatedAt.UnixMilli(),
		})
	}
	return out
}
