package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// MovieStore is the slice of the movie repository the services use.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	ListAll(ctx context.Context) ([]model.Movie, error)
}

// PlaceStore is the slice of the place repository the services use.
type PlaceStore interface {
	Create(ctx context.Context, p *model.Place) error
	GetByID(ctx context.Context, id uint64) (*model.Place, error)
	ListAll(ctx context.Context) ([]model.Place, error)
}

// CatalogService grows and lists the shared movie/place catalogs. Both
// are unowned and append-only: inserts carry no user and no dedup is
// attempted, so retrying an insert yields a second row. That is accepted
// behavior, not a defect, under the shared-catalog model.
type CatalogService struct {
	movies MovieStore
	places PlaceStore
}

func NewCatalogService(movies MovieStore, places PlaceStore) *CatalogService {
	return &CatalogService{movies: movies, places: places}
}

// MovieInput carries the raw form fields for an ad hoc movie insert.
// ReleaseYear stays a string here: the form submits text and non-numeric
// input is treated as absent rather than rejected.
type MovieInput struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseYear string `json:"release_year"`
	Genre       string `json:"genre"`
}

// PlaceInput carries the raw form fields for an ad hoc place insert.
type PlaceInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	PlaceType string `json:"place_type"`
}

// AddMovie inserts a catalog movie. The title is trimmed and required;
// the optional fields are trimmed and stored as absent when empty.
func (s *CatalogService) AddMovie(ctx context.Context, in MovieInput) (*model.Movie, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.Validation("title", "movie title is required")
	}
	m := &model.Movie{
		Title:       title,
		Director:    optional(strings.TrimSpace(in.Director)),
		ReleaseYear: optionalInt(in.ReleaseYear),
		Genre:       optional(strings.TrimSpace(in.Genre)),
	}
	if err := s.movies.Create(ctx, m); err != nil {
		return nil, apperror.Upstream("creating movie", err)
	}
	return m, nil
}

// AddPlace inserts a catalog place. The name is trimmed and required.
func (s *CatalogService) AddPlace(ctx context.Context, in PlaceInput) (*model.Place, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("name", "place name is required")
	}
	p := &model.Place{
		Name:      name,
		Address:   optional(strings.TrimSpace(in.Address)),
		PlaceType: optional(strings.TrimSpace(in.PlaceType)),
	}
	if err := s.places.Create(ctx, p); err != nil {
		return nil, apperror.Upstream("creating place", err)
	}
	return p, nil
}

// ListMovies returns the whole movie catalog for the record form.
func (s *CatalogService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.movies.ListAll(ctx)
	if err != nil {
		return nil, apperror.Upstream("listing movies", err)
	}
	return movies, nil
}

// ListPlaces returns the whole place catalog for the record form.
func (s *CatalogService) ListPlaces(ctx context.Context) ([]model.Place, error) {
	places, err := s.places.ListAll(ctx)
	if err != nil {
		return nil, apperror.Upstream("listing places", err)
	}
	return places, nil
}

// optional maps an empty string to absent.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalInt parses a numeric form field leniently: anything that does
// not parse as an integer is treated as absent, never as an error.
func optionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// isNotFound reports whether err carries the not-found kind.
func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}
