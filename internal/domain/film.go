package domain

import (
	"sort"
	"time"
)

// Film представляет фильм каталога вместе с его связями.
// Жанры, режиссёры и оценки не хранятся в строке films,
// они перечитываются из связующих таблиц при каждом чтении.
type Film struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ReleaseDate time.Time     `json:"releaseDate"`
	Duration    int           `json:"duration"`
	Mpa         *Mpa          `json:"mpa,omitempty"`
	Genres      []Genre       `json:"genres"`
	Directors   []Director    `json:"directors"`
	Likes       map[int64]int `json:"likes"`
	PosterURL   string        `json:"posterUrl,omitempty"`
}

// Genre — элемент справочника жанров, соответствует таблице genres.
type Genre struct {
	ID   int64  `json:"id" db:"genre_id" gorm:"column:genre_id;primaryKey"`
	Name string `json:"name" db:"name" gorm:"column:name"`
}

func (Genre) TableName() string {
	return "genres"
}

// Mpa — возрастной рейтинг MPA, соответствует таблице mpa.
type Mpa struct {
	ID          int64  `json:"id" db:"mpa_id" gorm:"column:mpa_id;primaryKey"`
	Name        string `json:"name" db:"name" gorm:"column:name"`
	Description string `json:"description,omitempty" db:"description" gorm:"column:description"`
}

func (Mpa) TableName() string {
	return "mpa"
}

// Director — режиссёр, соответствует таблице directors.
type Director struct {
	ID   int64  `json:"id" db:"director_id"`
	Name string `json:"name" db:"name"`
}

// Like — оценка фильма пользователем, одна на пару (фильм, пользователь).
type Like struct {
	FilmID int64 `db:"film_id"`
	UserID int64 `db:"user_id"`
	Mark   int   `db:"mark"`
}

const (
	MinMark = 1
	MaxMark = 10
)

// ValidMark сообщает, лежит ли оценка в допустимом диапазоне [1,10].
func ValidMark(mark int) bool {
	return mark >= MinMark && mark <= MaxMark
}

// FilmStats — агрегат оценок фильма, по которому сортируют рейтинги.
// Для фильма без оценок AvgMark и MarksCount равны нулю.
type FilmStats struct {
	FilmID      int64     `db:"film_id"`
	ReleaseDate time.Time `db:"release_date"`
	AvgMark     float64   `db:"avg_mark"`
	MarksCount  int       `db:"marks_count"`
}

// UniqueGenres убирает повторы по id и упорядочивает жанры по id.
func UniqueGenres(genres []Genre) []Genre {
	seen := make(map[int64]struct{}, len(genres))
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UniqueDirectors убирает повторы по id и упорядочивает режиссёров по id.
func UniqueDirectors(directors []Director) []Director {
	seen := make(map[int64]struct{}, len(directors))
	out := make([]Director, 0, len(directors))
	for _, d := range directors {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
