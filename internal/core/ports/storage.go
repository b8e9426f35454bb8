package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/Filmorate/internal/domain"
)

// FilmStorage определяет методы для работы с фильмами и их связями
type FilmStorage interface {
	AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	GetFilm(ctx context.Context, id int64) (*domain.Film, error)
	GetFilms(ctx context.Context) ([]domain.Film, error)
	GetFilmsByIDs(ctx context.Context, ids []int64) ([]domain.Film, error)
	RemoveFilm(ctx context.Context, id int64) error
	SetPosterURL(ctx context.Context, id int64, url string) (bool, error)
	GetFilmGenres(ctx context.Context, filmID int64) ([]domain.Genre, error)
	GetFilmDirectors(ctx context.Context, filmID int64) ([]domain.Director, error)
	GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error)
}

// DirectorStorage определяет методы для работы со справочником режиссёров
type DirectorStorage interface {
	AddDirector(ctx context.Context, director *domain.Director) (*domain.Director, error)
	UpdateDirector(ctx context.Context, director *domain.Director) (*domain.Director, error)
	RemoveDirector(ctx context.Context, id int64) error
	GetDirector(ctx context.Context, id int64) (*domain.Director, error)
	GetAllDirectors(ctx context.Context) ([]domain.Director, error)
}

// LikeStorage определяет методы реестра оценок
type LikeStorage interface {
	AddLike(ctx context.Context, filmID, userID int64, mark int) error
	// RemoveLike возвращает false, если оценки не было
	RemoveLike(ctx context.Context, filmID, userID int64) (bool, error)
	GetFilmLikes(ctx context.Context, filmID int64) (map[int64]int, error)
	GetUserLikedFilms(ctx context.Context, userID int64) ([]int64, error)
	// GetLikeOverlaps возвращает для каждого другого пользователя число фильмов,
	// оценённых и им, и userID. Пользователи без пересечений не попадают в результат.
	GetLikeOverlaps(ctx context.Context, userID int64) (map[int64]int, error)
	GetFilmStats(ctx context.Context, filter domain.StatsFilter) ([]domain.FilmStats, error)
}

// ReferenceStorage читает справочники жанров и рейтингов MPA
type ReferenceStorage interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	ListMpa(ctx context.Context) ([]domain.Mpa, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	AddUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// FeedStorage хранит ленту событий пользователей
type FeedStorage interface {
	SaveEvent(ctx context.Context, event domain.FeedEvent) error
	GetUserFeed(ctx context.Context, userID int64) ([]domain.FeedEvent, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
