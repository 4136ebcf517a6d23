package repository

import (
	"context"
	"database/sql"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// PlaceRepo manages the shared `places` catalog (viewing venues).
// Same rules as movies: global, append-only, no dedup.
type PlaceRepo struct{ db *sql.DB }

func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{db: db} }

// Create inserts a place and populates the generated ID and creation
// timestamp on the given struct.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO places (name, address, place_type) VALUES (?,?,?)",
		p.Name, p.Address, p.PlaceType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM places WHERE id=?", p.ID).Scan(&p.CreatedAt)
}

// GetByID fetches a single place; a missing row maps to NotFound.
func (r *PlaceRepo) GetByID(ctx context.Context, id uint64) (*model.Place, error) {
	var (
		p         model.Place
		address   sql.NullString
		placeType sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id,name,address,place_type,created_at FROM places WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &address, &placeType, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("place")
	}
	if err != nil {
		return nil, err
	}
	p.Address = nullStr(address)
	p.PlaceType = nullStr(placeType)
	return &p, nil
}

// ListAll returns every venue ordered by name, for the record form's
// place selector.
func (r *PlaceRepo) ListAll(ctx context.Context) ([]model.Place, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,name,address,place_type,created_at FROM places ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Place{}
	for rows.Next() {
		var (
			p         model.Place
			address   sql.NullString
			placeType sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &address, &placeType, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Address = nullStr(address)
		p.PlaceType = nullStr(placeType)
		out = append(out, p)
	}
	return out, rows.Err()
}
