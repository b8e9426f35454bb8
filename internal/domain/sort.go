package domain

import (
	"fmt"
	"strings"
)

// SortType задаёт порядок фильмов режиссёра.
type SortType int

const (
	SortByYear SortType = iota + 1
	SortByLikes
)

func (s SortType) String() string {
	switch s {
	case SortByYear:
		return "year"
	case SortByLikes:
		return "likes"
	default:
		return fmt.Sprintf("SortType(%d)", int(s))
	}
}

// ParseSortType разбирает значение параметра sortBy.
func ParseSortType(v string) (SortType, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "year":
		return SortByYear, nil
	case "likes":
		return SortByLikes, nil
	default:
		return 0, fmt.Errorf("unknown sort type %q", v)
	}
}

// PopularQuery — параметры выборки популярных фильмов.
// Nil в GenreID или Year означает отсутствие фильтра.
type PopularQuery struct {
	Limit   int
	GenreID *int64
	Year    *int
}

// StatsFilter ограничивает набор фильмов, по которым считается статистика оценок.
type StatsFilter struct {
	GenreID    *int64
	Year       *int
	DirectorID *int64
}
