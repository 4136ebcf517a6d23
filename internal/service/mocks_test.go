package service

import (
	"context"
	"sort"
	"time"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
	"github.com/ayatok/cinemalog/internal/repository"
)

// In-memory fakes for the store interfaces. They reproduce the same
// observable behavior as the SQL repositories: ownership predicates on
// update/delete, half-open date ranges, watched_at-descending order and
// not-found mapping. Each fake has a failWith hook to simulate an
// upstream store failure.

type memMovieStore struct {
	movies   map[uint64]model.Movie
	nextID   uint64
	failWith error
}

func newMemMovieStore() *memMovieStore {
	return &memMovieStore{movies: map[uint64]model.Movie{}}
}

func (m *memMovieStore) Create(_ context.Context, movie *model.Movie) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	movie.ID = m.nextID
	movie.CreatedAt = time.Now().UTC()
	m.movies[movie.ID] = *movie
	return nil
}

func (m *memMovieStore) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	movie, ok := m.movies[id]
	if !ok {
		return nil, apperror.NotFound("movie")
	}
	return &movie, nil
}

func (m *memMovieStore) ListAll(_ context.Context) ([]model.Movie, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]model.Movie, 0, len(m.movies))
	for _, movie := range m.movies {
		out = append(out, movie)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type memPlaceStore struct {
	places   map[uint64]model.Place
	nextID   uint64
	failWith error
}

func newMemPlaceStore() *memPlaceStore {
	return &memPlaceStore{places: map[uint64]model.Place{}}
}

func (m *memPlaceStore) Create(_ context.Context, place *model.Place) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	place.ID = m.nextID
	place.CreatedAt = time.Now().UTC()
	m.places[place.ID] = *place
	return nil
}

func (m *memPlaceStore) GetByID(_ context.Context, id uint64) (*model.Place, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	place, ok := m.places[id]
	if !ok {
		return nil, apperror.NotFound("place")
	}
	return &place, nil
}

func (m *memPlaceStore) ListAll(_ context.Context) ([]model.Place, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]model.Place, 0, len(m.places))
	for _, place := range m.places {
		out = append(out, place)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memRecordStore struct {
	records   []model.RecordView
	movies    *memMovieStore
	nextID    uint64
	failWith  error
	yearsErr  error
	detailErr error
}

func newMemRecordStore(movies *memMovieStore) *memRecordStore {
	return &memRecordStore{movies: movies}
}

// seed inserts a fully-formed view directly, bypassing Create.
func (m *memRecordStore) seed(v model.RecordView) {
	m.nextID++
	v.ID = m.nextID
	m.records = append(m.records, v)
}

func (m *memRecordStore) Create(_ context.Context, rec *model.Record) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	rec.ID = m.nextID
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt

	v := model.RecordView{Record: *rec}
	if movie, ok := m.movies.movies[rec.MovieID]; ok {
		v.Movie = model.MovieInfo{
			Title:       movie.Title,
			Director:    movie.Director,
			ReleaseYear: movie.ReleaseYear,
			Genre:       movie.Genre,
		}
	}
	m.records = append(m.records, v)
	return nil
}

func (m *memRecordStore) Update(_ context.Context, rec *model.Record) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.records {
		if m.records[i].ID == rec.ID && m.records[i].UserID == rec.UserID {
			rec.CreatedAt = m.records[i].CreatedAt
			rec.UpdatedAt = time.Now().UTC()
			m.records[i].Record = *rec
			return nil
		}
	}
	return apperror.NotFound("record")
}

func (m *memRecordStore) Delete(_ context.Context, owner string, id uint64) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.records {
		if m.records[i].ID == id && m.records[i].UserID == owner {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("record")
}

func (m *memRecordStore) GetDetail(_ context.Context, id uint64) (*model.RecordDetail, error) {
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	for _, v := range m.records {
		if v.ID == id {
			return &model.RecordDetail{
				RecordView: v,
				Owner:      model.UserInfo{Email: v.UserID + "@example.com"},
			}, nil
		}
	}
	return nil, apperror.NotFound("record")
}

func (m *memRecordStore) ListByOwner(_ context.Context, owner string, rng *repository.DateRange, limit int) ([]model.RecordView, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []model.RecordView{}
	for _, v := range m.records {
		if v.UserID != owner {
			continue
		}
		if rng != nil && (v.WatchedAt.Before(rng.From) || !v.WatchedAt.Before(rng.To)) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WatchedAt.Equal(out[j].WatchedAt) {
			return out[i].WatchedAt.After(out[j].WatchedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRecordStore) DistinctYears(_ context.Context, owner string) ([]int, error) {
	if m.yearsErr != nil {
		return nil, m.yearsErr
	}
	seen := map[int]bool{}
	for _, v := range m.records {
		if v.UserID == owner {
			seen[v.WatchedAt.Year()] = true
		}
	}
	out := []int{}
	for y := range seen {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

type memFriendStore struct {
	rows     []model.Friendship
	nextID   uint64
	failWith error
}

func newMemFriendStore() *memFriendStore { return &memFriendStore{} }

func (m *memFriendStore) AcceptedBetween(_ context.Context, a, b string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	for _, f := range m.rows {
		if f.Status != model.FriendStatusAccepted {
			continue
		}
		if (f.RequesterID == a && f.RequestedID == b) || (f.RequesterID == b && f.RequestedID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFriendStore) Create(_ context.Context, f *model.Friendship) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	f.ID = m.nextID
	f.Status = model.FriendStatusPending
	f.CreatedAt = time.Now().UTC()
	f.UpdatedAt = f.CreatedAt
	m.rows = append(m.rows, *f)
	return nil
}

func (m *memFriendStore) Respond(_ context.Context, id uint64, requestedID, status string) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].RequestedID == requestedID && m.rows[i].Status == model.FriendStatusPending {
			m.rows[i].Status = status
			return nil
		}
	}
	return apperror.NotFound("friend request")
}

func (m *memFriendStore) ListForUser(_ context.Context, userID string) ([]model.Friendship, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []model.Friendship{}
	for _, f := range m.rows {
		if f.RequesterID == userID || f.RequestedID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

// accept links two users directly, as if a request had been accepted.
func (m *memFriendStore) accept(a, b string) {
	m.nextID++
	m.rows = append(m.rows, model.Friendship{
		ID: m.nextID, RequesterID: a, RequestedID: b, Status: model.FriendStatusAccepted,
	})
}

type memCommentStore struct {
	rows     []model.CommentView
	nextID   uint64
	failWith error
}

func newMemCommentStore() *memCommentStore { return &memCommentStore{} }

func (m *memCommentStore) Create(_ context.Context, c *model.Comment) (*model.CommentView, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Unix(int64(1700000000+m.nextID), 0).UTC()
	c.UpdatedAt = c.CreatedAt
	v := model.CommentView{
		Comment: *c,
		Author:  model.UserInfo{Email: c.UserID + "@example.com"},
	}
	m.rows = append(m.rows, v)
	return &v, nil
}

func (m *memCommentStore) ListByRecord(_ context.Context, recordID uint64) ([]model.CommentView, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []model.CommentView{}
	for _, v := range m.rows {
		if v.RecordID == recordID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// recordedEvents captures publisher notifications for assertions.
type recordedEvents struct {
	records []uint64
	titles  []string
}

func (r *recordedEvents) RecordLogged(rec *model.Record, movie *model.Movie) {
	r.records = append(r.records, rec.ID)
	r.titles = append(r.titles, movie.Title)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
