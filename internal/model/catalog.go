package model

import "time"

// Movie is a row in the shared `movies` catalog. Movies have no owner:
// any user may reference any movie from a record, and rows are created
// on demand when a user logs a film that is not yet in the catalog.
// The catalog is append-only; nothing in the application updates or
// deletes movies, and duplicate titles are accepted.
//
// Fields:
//  ID          – auto-assigned primary key.
//  Title       – movie title (required).
//  Director    – optional director name.
//  ReleaseYear – optional release year.
//  Genre       – optional free-form genre label.
//  CreatedAt   – timestamp of creation.
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Director    *string   `json:"director"`
	ReleaseYear *int      `json:"release_year"`
	Genre       *string   `json:"genre"`
	CreatedAt   time.Time `json:"created_at"`
}

// Place is a row in the shared `places` catalog: a viewing venue such
// as a theater, a living room or a streaming service. Like movies,
// places are unowned and append-only.
//
// Fields:
//  ID        – auto-assigned primary key.
//  Name      – venue name (required).
//  Address   – optional street address.
//  PlaceType – optional venue kind (theater, home, streaming, other or
//              any free-form label).
//  CreatedAt – timestamp of creation.
type Place struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	PlaceType *string   `json:"place_type"`
	CreatedAt time.Time `json:"created_at"`
}
