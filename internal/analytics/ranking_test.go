package analytics

import (
	"testing"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func year(y int) time.Time {
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestTopPopular(t *testing.T) {
	// F1={4,5,3} avg 4.0; F2={10,10,10}; F3={10,10}; F4 без оценок
	stats := []domain.FilmStats{
		{FilmID: 1, AvgMark: 4, MarksCount: 3},
		{FilmID: 2, AvgMark: 10, MarksCount: 3},
		{FilmID: 3, AvgMark: 10, MarksCount: 2},
		{FilmID: 4},
	}

	tests := []struct {
		name  string
		limit int
		want  []int64
	}{
		{name: "top three", limit: 3, want: []int64{2, 3, 1}},
		{name: "unrated last", limit: 10, want: []int64{2, 3, 1, 4}},
		{name: "limit one", limit: 1, want: []int64{2}},
		{name: "non positive limit uses default", limit: 0, want: []int64{2, 3, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopPopular(stats, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.limit, DefaultPopularLimit))
		})
	}
}

func TestTopPopularEmpty(t *testing.T) {
	assert.Empty(t, TopPopular(nil, 5))
}

func TestSortStats(t *testing.T) {
	stats := []domain.FilmStats{
		{FilmID: 1, ReleaseDate: year(2000), AvgMark: 6, MarksCount: 1},
		{FilmID: 2, ReleaseDate: year(1999), AvgMark: 8, MarksCount: 1},
		{FilmID: 3, ReleaseDate: year(1999), AvgMark: 8, MarksCount: 4},
	}

	assert.Equal(t, []int64{2, 3, 1}, FilmIDs(SortStats(stats, domain.SortByYear)))
	assert.Equal(t, []int64{3, 2, 1}, FilmIDs(SortStats(stats, domain.SortByLikes)))
	assert.Equal(t, []int64{1, 2, 3}, FilmIDs(SortStats(stats, domain.SortType(0))))

	assert.Equal(t, int64(1), stats[0].FilmID, "input is not reordered")
}

func TestSortStatsDirectorScenario(t *testing.T) {
	// F1 вышел в 2000, F2 в 1999, оба у одного режиссёра
	stats := []domain.FilmStats{
		{FilmID: 1, ReleaseDate: year(2000)},
		{FilmID: 2, ReleaseDate: year(1999)},
	}
	assert.Equal(t, []int64{2, 1}, FilmIDs(SortStats(stats, domain.SortByYear)))
}
