package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayatok/cinemalog/internal/apperror"
)

func newCatalogFixture() (*CatalogService, *memMovieStore, *memPlaceStore) {
	movies := newMemMovieStore()
	places := newMemPlaceStore()
	return NewCatalogService(movies, places), movies, places
}

func TestAddMovieTrimsAndStores(t *testing.T) {
	svc, movies, _ := newCatalogFixture()

	m, err := svc.AddMovie(context.Background(), MovieInput{
		Title:       "  Seven Samurai  ",
		Director:    " Akira Kurosawa ",
		ReleaseYear: "1954",
		Genre:       "",
	})
	require.NoError(t, err)
	assert.Equal(t, "Seven Samurai", m.Title)
	require.NotNil(t, m.Director)
	assert.Equal(t, "Akira Kurosawa", *m.Director)
	require.NotNil(t, m.ReleaseYear)
	assert.Equal(t, 1954, *m.ReleaseYear)
	assert.Nil(t, m.Genre)
	assert.Len(t, movies.movies, 1)
}

func TestAddMovieEmptyTitle(t *testing.T) {
	svc, movies, _ := newCatalogFixture()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.AddMovie(context.Background(), MovieInput{Title: title})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
	assert.Empty(t, movies.movies)
}

func TestAddMovieLenientYearParse(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	// Non-numeric input is treated as absent rather than erroring.
	m, err := svc.AddMovie(context.Background(), MovieInput{Title: "Alien", ReleaseYear: "unknown"})
	require.NoError(t, err)
	assert.Nil(t, m.ReleaseYear)

	m, err = svc.AddMovie(context.Background(), MovieInput{Title: "Alien", ReleaseYear: " 1979 "})
	require.NoError(t, err)
	require.NotNil(t, m.ReleaseYear)
	assert.Equal(t, 1979, *m.ReleaseYear)
}

func TestAddMovieAllowsDuplicates(t *testing.T) {
	// No natural-key dedup: a retry creates a second catalog row.
	svc, movies, _ := newCatalogFixture()

	first, err := svc.AddMovie(context.Background(), MovieInput{Title: "Alien"})
	require.NoError(t, err)
	second, err := svc.AddMovie(context.Background(), MovieInput{Title: "Alien"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, movies.movies, 2)
}

func TestAddPlace(t *testing.T) {
	svc, _, places := newCatalogFixture()

	p, err := svc.AddPlace(context.Background(), PlaceInput{Name: " TOHO Cinemas Shinjuku ", PlaceType: "theater"})
	require.NoError(t, err)
	assert.Equal(t, "TOHO Cinemas Shinjuku", p.Name)
	require.NotNil(t, p.PlaceType)
	assert.Equal(t, "theater", *p.PlaceType)
	assert.Nil(t, p.Address)
	assert.Len(t, places.places, 1)

	_, err = svc.AddPlace(context.Background(), PlaceInput{Name: "  "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAddMovieUpstreamFailure(t *testing.T) {
	svc, movies, _ := newCatalogFixture()
	movies.failWith = errors.New("store down")

	_, err := svc.AddMovie(context.Background(), MovieInput{Title: "Alien"})
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestListCatalogs(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	_, err := svc.AddMovie(context.Background(), MovieInput{Title: "Zulu"})
	require.NoError(t, err)
	_, err = svc.AddMovie(context.Background(), MovieInput{Title: "Alien"})
	require.NoError(t, err)

	movies, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[0].Title)

	places, err := svc.ListPlaces(context.Background())
	require.NoError(t, err)
	assert.Empty(t, places)
}
