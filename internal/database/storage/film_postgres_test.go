package storage

import (
	"context"
	"testing"
	"time"

	"github.com/GoArmGo/Filmorate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmStorage_AddAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	directors := NewDirectorStorage(db, discardLogger())
	films := NewFilmStorage(db, discardLogger())

	d, err := directors.AddDirector(ctx, &domain.Director{Name: "Тарковский"})
	require.NoError(t, err)

	f := newFilm("Сталкер", date(1979, time.May, 25))
	f.Genres = []domain.Genre{{ID: 2}, {ID: 1}, {ID: 2}}
	f.Directors = []domain.Director{{ID: d.ID}}

	created, err := films.AddFilm(ctx, f)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Сталкер", created.Name)
	assert.Equal(t, date(1979, time.May, 25), created.ReleaseDate)
	require.NotNil(t, created.Mpa)
	assert.Equal(t, "G", created.Mpa.Name)
	assert.Equal(t, []domain.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, created.Genres)
	assert.Equal(t, []domain.Director{{ID: d.ID, Name: "Тарковский"}}, created.Directors)
	assert.Empty(t, created.Likes)
	assert.NotNil(t, created.Likes)

	got, err := films.GetFilm(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestFilmStorage_GetUnknown(t *testing.T) {
	db := newTestDB(t)
	films := NewFilmStorage(db, discardLogger())

	got, err := films.GetFilm(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFilmStorage_UpdateReplacesAssociations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	films := NewFilmStorage(db, discardLogger())

	f := newFilm("Film", date(2000, time.January, 1))
	f.Genres = []domain.Genre{{ID: 1}, {ID: 2}}
	created, err := films.AddFilm(ctx, f)
	require.NoError(t, err)

	upd := newFilm("Film v2", date(2001, time.February, 2))
	upd.ID = created.ID
	upd.Mpa = &domain.Mpa{ID: 4}
	upd.Genres = []domain.Genre{{ID: 3}}

	updated, err := films.UpdateFilm(ctx, upd)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Film v2", updated.Name)
	assert.Equal(t, int64(4), updated.Mpa.ID)
	assert.Equal(t, []domain.Genre{{ID: 3, Name: "Мультфильм"}}, updated.Genres)

	genres, err := films.GetFilmGenres(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestFilmStorage_UpdateUnknownWritesNothing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	films := NewFilmStorage(db, discardLogger())

	upd := newFilm("ghost", date(2000, time.January, 1))
	upd.ID = 999
	upd.Genres = []domain.Genre{{ID: 1}}

	got, err := films.UpdateFilm(ctx, upd)
	require.NoError(t, err)
	assert.Nil(t, got)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM film_genres`))
	assert.Zero(t, n)
}

func TestFilmStorage_AddWithUnknownGenreFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	films := NewFilmStorage(db, discardLogger())

	f := newFilm("bad", date(2000, time.January, 1))
	f.Genres = []domain.Genre{{ID: 100}}

	_, err := films.AddFilm(ctx, f)
	require.Error(t, err)

	all, err := films.GetFilms(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "failed insert must be rolled back")
}

func TestFilmStorage_GetFilmsOrderedAndByIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	films := NewFilmStorage(db, discardLogger())

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		f, err := films.AddFilm(ctx, newFilm(name, date(2010, time.June, 1)))
		require.NoError(t, err)
		ids = append(ids, f.ID)
	}

	all, err := films.GetFilms(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, f := range all {
		assert.Equal(t, ids[i], f.ID)
	}

	picked, err := films.GetFilmsByIDs(ctx, []int64{ids[2], 777, ids[0]})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "C", picked[0].Name)
	assert.Equal(t, "A", picked[1].Name)

	empty, err := films.GetFilmsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFilmStorage_RemoveAndPoster(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	films := NewFilmStorage(db, discardLogger())
	likes := NewLikeStorage(db, discardLogger())
	user := addUser(t, db, "u1")

	f, err := films.AddFilm(ctx, newFilm("Poster", date(2015, time.March, 3)))
	require.NoError(t, err)

	ok, err := films.SetPosterURL(ctx, f.ID, "http://cdn/posters/1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = films.SetPosterURL(ctx, 12345, "http://cdn/none")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, likes.AddLike(ctx, f.ID, user, 8))
	got, err := films.GetFilm(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/posters/1", got.PosterURL)
	assert.Equal(t, map[int64]int{user: 8}, got.Likes)

	require.NoError(t, films.RemoveFilm(ctx, f.ID))
	require.NoError(t, films.RemoveFilm(ctx, f.ID))

	got, err = films.GetFilm(ctx, f.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	liked, err := likes.GetUserLikedFilms(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, liked)
}
