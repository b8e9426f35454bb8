package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/Filmorate/internal/domain"
)

// FilmUseCase определяет бизнес-логику каталога фильмов, оценок и аналитики
type FilmUseCase interface {
	AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	// UpdateFilm возвращает nil, nil если фильма с таким id нет
	UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	GetFilm(ctx context.Context, id int64) (*domain.Film, error)
	GetFilms(ctx context.Context) ([]domain.Film, error)
	RemoveFilm(ctx context.Context, id int64) error

	// AddLike ставит или перезаписывает оценку и публикует событие в ленту пользователя
	AddLike(ctx context.Context, filmID, userID int64, mark int) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error)

	// GetPopularFilms возвращает самые высоко оценённые фильмы с учётом необязательных фильтров
	GetPopularFilms(ctx context.Context, query domain.PopularQuery) ([]domain.Film, error)
	// GetDirectorFilms возвращает фильмы режиссёра в выбранном порядке; для неизвестного режиссёра пустой список
	GetDirectorFilms(ctx context.Context, directorID int64, sortType domain.SortType) ([]domain.Film, error)
	// GetFilmsRecommendation подбирает фильмы, которые оценили самые похожие пользователи
	GetFilmsRecommendation(ctx context.Context, userID int64) ([]domain.Film, error)

	// UploadPoster загружает постер в файловое хранилище и сохраняет ссылку на фильме
	UploadPoster(ctx context.Context, filmID int64, reader io.Reader, contentType string) (*domain.Film, error)
}

// DirectorUseCase определяет операции справочника режиссёров
type DirectorUseCase interface {
	AddDirector(ctx context.Context, director *domain.Director) (*domain.Director, error)
	UpdateDirector(ctx context.Context, director *domain.Director) (*domain.Director, error)
	RemoveDirector(ctx context.Context, id int64) error
	GetDirector(ctx context.Context, id int64) (*domain.Director, error)
	GetAllDirectors(ctx context.Context) ([]domain.Director, error)
}

// ReferenceCatalog — неизменяемые справочники жанров и MPA
type ReferenceCatalog interface {
	GetAllGenres() []domain.Genre
	GetGenreByID(id int64) *domain.Genre
	GetAllMpa() []domain.Mpa
	GetMpaByID(id int64) *domain.Mpa
}

// UserUseCase определяет операции с пользователями
type UserUseCase interface {
	AddUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// FeedUseCase определяет операции с лентой событий
type FeedUseCase interface {
	// SaveEvent сохраняет событие, пришедшее из очереди
	SaveEvent(ctx context.Context, event domain.FeedEvent) error
	GetUserFeed(ctx context.Context, userID int64) ([]domain.FeedEvent, error)
}
