package repository

import (
	"context"
	"database/sql"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// MovieRepo manages the shared `movies` catalog. The catalog is global
// and append-only: rows are inserted when a user logs a film not yet in
// the catalog and are never updated or removed. No dedup is attempted,
// so retrying an insert produces a second row with a new ID.
type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts a movie and populates the generated ID and the
// DB-assigned creation timestamp on the given struct.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (title, director, release_year, genre) VALUES (?,?,?,?)",
		m.Title, m.Director, m.ReleaseYear, m.Genre)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM movies WHERE id=?", m.ID).Scan(&m.CreatedAt)
}

// GetByID fetches a single movie. A missing row maps to a NotFound
// application error.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	var (
		m           model.Movie
		director    sql.NullString
		releaseYear sql.NullInt64
		genre       sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id,title,director,release_year,genre,created_at FROM movies WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Title, &director, &releaseYear, &genre, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("movie")
	}
	if err != nil {
		return nil, err
	}
	m.Director = nullStr(director)
	m.ReleaseYear = nullInt(releaseYear)
	m.Genre = nullStr(genre)
	return &m, nil
}

// ListAll returns the whole catalog ordered by title, for the record
// form's movie selector.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,title,director,release_year,genre,created_at FROM movies ORDER BY title, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var (
			m           model.Movie
			director    sql.NullString
			releaseYear sql.NullInt64
			genre       sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Title, &director, &releaseYear, &genre, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Director = nullStr(director)
		m.ReleaseYear = nullInt(releaseYear)
		m.Genre = nullStr(genre)
		out = append(out, m)
	}
	return out, rows.Err()
}

// nullStr converts a nullable text column to a *string.
func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// nullInt converts a nullable integer column to a *int.
func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
