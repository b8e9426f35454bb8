// Package analytics содержит чистые функции ранжирования и подбора рекомендаций.
// Все данные приходят из хранилища готовыми агрегатами; здесь только порядок и отбор.
package analytics

import (
	"sort"

	"github.com/GoArmGo/Filmorate/internal/domain"
)

// DefaultPopularLimit используется, когда запрошенный размер выборки не положителен.
const DefaultPopularLimit = 10

// byLikes: средняя оценка по убыванию, затем число оценок по убыванию, затем id.
func byLikes(a, b domain.FilmStats) bool {
	if a.AvgMark != b.AvgMark {
		return a.AvgMark > b.AvgMark
	}
	if a.MarksCount != b.MarksCount {
		return a.MarksCount > b.MarksCount
	}
	return a.FilmID < b.FilmID
}

// byYear: дата выхода по возрастанию, затем id.
func byYear(a, b domain.FilmStats) bool {
	if !a.ReleaseDate.Equal(b.ReleaseDate) {
		return a.ReleaseDate.Before(b.ReleaseDate)
	}
	return a.FilmID < b.FilmID
}

// SortStats возвращает отсортированную копию stats. Неизвестный тип сортировки
// даёт порядок по id.
func SortStats(stats []domain.FilmStats, sortType domain.SortType) []domain.FilmStats {
	out := make([]domain.FilmStats, len(stats))
	copy(out, stats)

	less := func(a, b domain.FilmStats) bool { return a.FilmID < b.FilmID }
	switch sortType {
	case domain.SortByLikes:
		less = byLikes
	case domain.SortByYear:
		less = byYear
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// TopPopular возвращает id первых limit фильмов в порядке популярности.
func TopPopular(stats []domain.FilmStats, limit int) []int64 {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	sorted := SortStats(stats, domain.SortByLikes)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return FilmIDs(sorted)
}

func FilmIDs(stats []domain.FilmStats) []int64 {
	ids := make([]int64, 0, len(stats))
	for _, s := range stats {
		ids = append(ids, s.FilmID)
	}
	return ids
}
