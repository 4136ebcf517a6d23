package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
	"github.com/ayatok/cinemalog/internal/repository"
)

// Validation bounds for record input.
const (
	MaxMemoLength = 5000
	MinRating     = 1
	MaxRating     = 10

	dashboardRecentLimit = 10
)

// RecordStore is the slice of the record repository the services use.
type RecordStore interface {
	Create(ctx context.Context, rec *model.Record) error
	Update(ctx context.Context, rec *model.Record) error
	Delete(ctx context.Context, owner string, id uint64) error
	GetDetail(ctx context.Context, id uint64) (*model.RecordDetail, error)
	ListByOwner(ctx context.Context, owner string, rng *repository.DateRange, limit int) ([]model.RecordView, error)
	DistinctYears(ctx context.Context, owner string) ([]int, error)
}

// RecordEventPublisher receives a notification after a record has been
// created. Publishing is best effort: implementations log their own
// failures and never block the request.
type RecordEventPublisher interface {
	RecordLogged(rec *model.Record, movie *model.Movie)
}

// RecordService implements the record query engine and the record
// lifecycle operations.
type RecordService struct {
	records RecordStore
	movies  MovieStore
	places  PlaceStore
	access  *AccessService
	events  RecordEventPublisher
}

func NewRecordService(records RecordStore, movies MovieStore, places PlaceStore, access *AccessService, events RecordEventPublisher) *RecordService {
	return &RecordService{records: records, movies: movies, places: places, access: access, events: events}
}

// ListFilter carries the optional query parameters of the record list.
type ListFilter struct {
	Year   *int
	Search string
}

// Stats are derived over the filtered record set. AverageRating and
// TopGenre are nil when no record in the set carries a rating or genre;
// the presentation layer renders the sentinel as "---".
type Stats struct {
	Count         int      `json:"count"`
	AverageRating *float64 `json:"average_rating"`
	TopGenre      *string  `json:"top_genre"`
}

// ListResult bundles the filtered records, their stats and the year
// selector values.
type ListResult struct {
	Records []model.RecordView `json:"records"`
	Stats   Stats              `json:"stats"`
	Years   []int              `json:"years"`
}

// List builds the filtered view over the owner's records. The year
// filter is pushed to the store as a half-open date interval; the
// free-text filter then runs in memory over the already year-filtered
// set, matching case-insensitively against movie title, director and
// memo. Stats are derived from the final filtered set, while the
// available years always cover all of the owner's records.
func (s *RecordService) List(ctx context.Context, owner string, f ListFilter) (*ListResult, error) {
	var rng *repository.DateRange
	if f.Year != nil {
		r := yearRange(*f.Year)
		rng = &r
	}
	records, err := s.records.ListByOwner(ctx, owner, rng, 0)
	if err != nil {
		return nil, apperror.Upstream("listing records", err)
	}
	records = filterBySearch(records, f.Search)

	// The year selector is a non-critical read: losing it should not take
	// the whole listing down, so the error is logged and the list proceeds
	// with an empty selector.
	years, err := s.records.DistinctYears(ctx, owner)
	if err != nil {
		log.Printf("records: distinct years for %s failed: %v", owner, err)
		years = []int{}
	}

	return &ListResult{Records: records, Stats: computeStats(records), Years: years}, nil
}

// yearRange maps a calendar year to the half-open interval
// [year-01-01, (year+1)-01-01) on the stored date value. No timezone
// conversion is applied beyond the store's own UTC normalization.
func yearRange(year int) repository.DateRange {
	return repository.DateRange{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// filterBySearch keeps records whose movie title, director or memo
// contains the term, case-insensitively. An empty term keeps everything.
func filterBySearch(records []model.RecordView, term string) []model.RecordView {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	out := make([]model.RecordView, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Movie.Title), term) ||
			(r.Movie.Director != nil && strings.Contains(strings.ToLower(*r.Movie.Director), term)) ||
			(r.Memo != nil && strings.Contains(strings.ToLower(*r.Memo), term)) {
			out = append(out, r)
		}
	}
	return out
}

// computeStats derives count, average rating and top genre over the
// filtered set. The average only considers rated records. Among genres
// tied for the maximum count the lexicographically smallest wins, which
// keeps the aggregation deterministic.
func computeStats(records []model.RecordView) Stats {
	st := Stats{Count: len(records)}

	var sum, rated int
	for _, r := range records {
		if r.Rating != nil {
			sum += *r.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := float64(sum) / float64(rated)
		st.AverageRating = &avg
	}

	counts := map[string]int{}
	for _, r := range records {
		if r.Movie.Genre != nil && *r.Movie.Genre != "" {
			counts[*r.Movie.Genre]++
		}
	}
	if len(counts) > 0 {
		genres := make([]string, 0, len(counts))
		for g := range counts {
			genres = append(genres, g)
		}
		sort.Strings(genres)
		top := genres[0]
		for _, g := range genres[1:] {
			if counts[g] > counts[top] {
				top = g
			}
		}
		st.TopGenre = &top
	}
	return st
}

// DashboardResult carries the dashboard page data: the most recent
// records plus aggregates over the user's full history.
type DashboardResult struct {
	Recent     []model.RecordView `json:"recent"`
	Total      int                `json:"total"`
	MonthCount int                `json:"month_count"`
	Average    *float64           `json:"average_rating"`
}

// Dashboard loads the owner's full history once, slices off the most
// recent entries and derives the headline aggregates (total, watches in
// the current month, average rating) over the whole history.
func (s *RecordService) Dashboard(ctx context.Context, owner string) (*DashboardResult, error) {
	records, err := s.records.ListByOwner(ctx, owner, nil, 0)
	if err != nil {
		return nil, apperror.Upstream("loading dashboard", err)
	}

	res := &DashboardResult{Total: len(records)}
	now := time.Now().UTC()
	for _, r := range records {
		if r.WatchedAt.Year() == now.Year() && r.WatchedAt.Month() == now.Month() {
			res.MonthCount++
		}
	}
	res.Average = computeStats(records).AverageRating

	res.Recent = records
	if len(res.Recent) > dashboardRecentLimit {
		res.Recent = res.Recent[:dashboardRecentLimit]
	}
	return res, nil
}

// RecordInput is the validated input shape shared by create and update.
type RecordInput struct {
	MovieID   uint64
	PlaceID   *uint64
	WatchedAt time.Time
	Memo      string
	Rating    *int
}

// validate checks the input before any mutating call and resolves the
// referenced catalog rows. An unresolved movie or place is a validation
// failure, not a not-found: the input named something that does not
// exist. Returns the movie for use by event publishing.
func (s *RecordService) validate(ctx context.Context, in RecordInput) (*model.Movie, error) {
	if in.MovieID == 0 {
		return nil, apperror.Validation("movie_id", "movie is required")
	}
	if in.WatchedAt.IsZero() {
		return nil, apperror.Validation("watched_at", "watched date is required")
	}
	if utf8.RuneCountInString(in.Memo) > MaxMemoLength {
		return nil, apperror.Validation("memo", "memo must be 5000 characters or less")
	}
	if in.Rating != nil && (*in.Rating < MinRating || *in.Rating > MaxRating) {
		return nil, apperror.Validation("rating", "rating must be between 1 and 10")
	}

	movie, err := s.movies.GetByID(ctx, in.MovieID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Validation("movie_id", "movie does not exist")
		}
		return nil, apperror.Upstream("resolving movie", err)
	}
	if in.PlaceID != nil {
		if _, err := s.places.GetByID(ctx, *in.PlaceID); err != nil {
			if isNotFound(err) {
				return nil, apperror.Validation("place_id", "place does not exist")
			}
			return nil, apperror.Upstream("resolving place", err)
		}
	}
	return movie, nil
}

// Create persists a new record owned by the caller. Validation runs
// before the insert, so a rejected input leaves no row behind. After a
// successful insert a record.logged event is published best-effort.
func (s *RecordService) Create(ctx context.Context, owner string, in RecordInput) (*model.Record, error) {
	movie, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	rec := &model.Record{
		UserID:    owner,
		MovieID:   in.MovieID,
		PlaceID:   in.PlaceID,
		WatchedAt: in.WatchedAt,
		Memo:      optional(strings.TrimSpace(in.Memo)),
		Rating:    in.Rating,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, apperror.Upstream("creating record", err)
	}
	if s.events != nil {
		s.events.RecordLogged(rec, movie)
	}
	return rec, nil
}

// Update rewrites an existing record. The ownership check lives in the
// store's UPDATE predicate; a non-owner caller gets not-found and the
// record stays untouched.
func (s *RecordService) Update(ctx context.Context, owner string, id uint64, in RecordInput) (*model.Record, error) {
	if _, err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	rec := &model.Record{
		ID:        id,
		UserID:    owner,
		MovieID:   in.MovieID,
		PlaceID:   in.PlaceID,
		WatchedAt: in.WatchedAt,
		Memo:      optional(strings.TrimSpace(in.Memo)),
		Rating:    in.Rating,
	}
	if err := s.records.Update(ctx, rec); err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, apperror.Upstream("updating record", err)
	}
	return rec, nil
}

// Delete removes an owned record, with the same ownership semantics as
// Update. The interactive confirmation lives in the presentation layer;
// once invoked the operation is unconditional.
func (s *RecordService) Delete(ctx context.Context, owner string, id uint64) error {
	if err := s.records.Delete(ctx, owner, id); err != nil {
		if isNotFound(err) {
			return err
		}
		return apperror.Upstream("deleting record", err)
	}
	return nil
}

// Get loads a record's detail view for a viewer. Visibility failures
// surface as not-found so the existence of other users' records never
// leaks. When the friendship lookup itself fails, the error is logged
// and access is denied (fail closed).
func (s *RecordService) Get(ctx context.Context, viewer string, id uint64) (*model.RecordDetail, error) {
	detail, err := s.records.GetDetail(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, apperror.Upstream("loading record", err)
	}

	ok, err := s.access.CanView(ctx, viewer, &detail.Record)
	if err != nil {
		log.Printf("records: friendship check for %s on record %d failed: %v", viewer, id, err)
		ok = false
	}
	if !ok {
		return nil, apperror.NotFound("record")
	}
	return detail, nil
}
