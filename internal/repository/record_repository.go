package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// RecordRepo manages persistence for watch records. Every mutation that
// targets an existing record carries the ownership predicate
// `WHERE id = ? AND user_id = ?` in SQL, so a non-owner update or delete
// affects zero rows and is reported as not-found. The data layer never
// reveals whether the row belonged to somebody else.
type RecordRepo struct{ db *sql.DB }

func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{db: db} }

// DateRange is a half-open [From, To) interval applied to watched_at.
type DateRange struct {
	From time.Time
	To   time.Time
}

const recordViewColumns = `r.id, r.user_id, r.movie_id, r.place_id, r.watched_at, r.memo, r.rating,
       r.created_at, r.updated_at,
       m.title, m.director, m.release_year, m.genre,
       p.name, p.place_type, p.address`

// Create inserts a record and queries the row back to populate the
// generated ID and DB-default timestamps.
func (r *RecordRepo) Create(ctx context.Context, rec *model.Record) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO records (user_id, movie_id, place_id, watched_at, memo, rating) VALUES (?,?,?,?,?,?)",
		rec.UserID, rec.MovieID, rec.PlaceID, rec.WatchedAt, rec.Memo, rec.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM records WHERE id=?",
		rec.ID).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// Update rewrites the mutable columns of the record identified by
// rec.ID, but only when it is owned by rec.UserID. Zero affected rows
// (missing record or foreign owner alike) map to NotFound; the DSN sets
// clientFoundRows so a matched row with unchanged values still counts.
func (r *RecordRepo) Update(ctx context.Context, rec *model.Record) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE records SET movie_id=?, place_id=?, watched_at=?, memo=?, rating=?
		 WHERE id=? AND user_id=?`,
		rec.MovieID, rec.PlaceID, rec.WatchedAt, rec.Memo, rec.Rating, rec.ID, rec.UserID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("record")
	}
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM records WHERE id=?",
		rec.ID).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// Delete removes the record when owned by the given user; zero affected
// rows map to NotFound.
func (r *RecordRepo) Delete(ctx context.Context, owner string, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM records WHERE id=? AND user_id=?", id, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("record")
	}
	return nil
}

// GetDetail loads one record joined with its movie, optional place and
// owner profile. Access control is the caller's concern; this method
// only distinguishes present from absent.
func (r *RecordRepo) GetDetail(ctx context.Context, id uint64) (*model.RecordDetail, error) {
	q := `SELECT ` + recordViewColumns + `, u.display_name, u.email
	      FROM records r
	      JOIN movies m ON m.id = r.movie_id
	      LEFT JOIN places p ON p.id = r.place_id
	      JOIN users u ON u.id = r.user_id
	      WHERE r.id = ? LIMIT 1`

	var (
		d           model.RecordDetail
		cols        viewScanCols
		displayName sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(append(cols.targets(&d.RecordView), &displayName, &d.Owner.Email)...)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("record")
	}
	if err != nil {
		return nil, err
	}
	cols.apply(&d.RecordView)
	d.Owner.DisplayName = nullStr(displayName)
	return &d, nil
}

// ListByOwner returns the owner's records joined with movie and place,
// ordered by watched_at descending (newest first, id as a stable
// tie-break). rng optionally restricts watched_at to [From, To); limit
// caps the result when positive.
func (r *RecordRepo) ListByOwner(ctx context.Context, owner string, rng *DateRange, limit int) ([]model.RecordView, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + recordViewColumns + `
	      FROM records r
	      JOIN movies m ON m.id = r.movie_id
	      LEFT JOIN places p ON p.id = r.place_id
	      WHERE r.user_id = ?`)
	args := []any{owner}
	if rng != nil {
		b.WriteString(" AND r.watched_at >= ? AND r.watched_at < ?")
		args = append(args, rng.From, rng.To)
	}
	b.WriteString(" ORDER BY r.watched_at DESC, r.id DESC")
	if limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RecordView{}
	for rows.Next() {
		var (
			v    model.RecordView
			cols viewScanCols
		)
		if err := rows.Scan(cols.targets(&v)...); err != nil {
			return nil, err
		}
		cols.apply(&v)
		out = append(out, v)
	}
	return out, rows.Err()
}

// DistinctYears returns the distinct calendar years present across all
// of the owner's records, newest first. Computed over the unfiltered
// set so the year selector stays stable while filters change.
func (r *RecordRepo) DistinctYears(ctx context.Context, owner string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT YEAR(watched_at) FROM records WHERE user_id=? ORDER BY 1 DESC", owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// viewScanCols holds the nullable column buffers for one RecordView row.
// targets() returns scan destinations in column order; apply() folds the
// nullable buffers into the view's pointer fields afterwards.
type viewScanCols struct {
	placeID     sql.NullInt64
	memo        sql.NullString
	rating      sql.NullInt64
	director    sql.NullString
	releaseYear sql.NullInt64
	genre       sql.NullString
	placeName   sql.NullString
	placeType   sql.NullString
	placeAddr   sql.NullString
}

func (c *viewScanCols) targets(v *model.RecordView) []any {
	return []any{
		&v.ID, &v.UserID, &v.MovieID, &c.placeID, &v.WatchedAt, &c.memo, &c.rating,
		&v.CreatedAt, &v.UpdatedAt,
		&v.Movie.Title, &c.director, &c.releaseYear, &c.genre,
		&c.placeName, &c.placeType, &c.placeAddr,
	}
}

func (c *viewScanCols) apply(v *model.RecordView) {
	if c.placeID.Valid {
		id := uint64(c.placeID.Int64)
		v.PlaceID = &id
	}
	v.Memo = nullStr(c.memo)
	v.Rating = nullInt(c.rating)
	v.Movie.Director = nullStr(c.director)
	v.Movie.ReleaseYear = nullInt(c.releaseYear)
	v.Movie.Genre = nullStr(c.genre)
	if c.placeName.Valid {
		v.Place = &model.PlaceInfo{
			Name:      c.placeName.String,
			PlaceType: nullStr(c.placeType),
			Address:   nullStr(c.placeAddr),
		}
	}
}
