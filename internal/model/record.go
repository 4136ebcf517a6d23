package model

import "time"

// Record is a row in the `records` table: one "I watched movie X"
// journal entry. A record is owned exclusively by UserID; only the
// owner may update or delete it, and that check is enforced with an
// ownership predicate at the data-access layer, never just in handler
// code.
//
// Fields:
//  ID        – auto-assigned primary key.
//  UserID    – owner of the record (users.id).
//  MovieID   – movie watched (movies.id, required).
//  PlaceID   – optional viewing venue (places.id).
//  WatchedAt – date of the viewing.
//  Memo      – optional free-text impressions, at most 5000 characters.
//  Rating    – optional score between 1 and 10 inclusive.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Record struct {
	ID        uint64    `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   uint64    `json:"movie_id"`
	PlaceID   *uint64   `json:"place_id"`
	WatchedAt time.Time `json:"watched_at"`
	Memo      *string   `json:"memo"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovieInfo is the movie projection joined onto record listings.
type MovieInfo struct {
	Title       string  `json:"title"`
	Director    *string `json:"director"`
	ReleaseYear *int    `json:"release_year"`
	Genre       *string `json:"genre"`
}

// PlaceInfo is the place projection joined onto record listings. It is
// nil on records that have no venue.
type PlaceInfo struct {
	Name      string  `json:"name"`
	PlaceType *string `json:"place_type"`
	Address   *string `json:"address"`
}

// RecordView is a record joined with its movie and optional place, the
// shape consumed by the list, dashboard and search surfaces.
type RecordView struct {
	Record
	Movie MovieInfo  `json:"movie"`
	Place *PlaceInfo `json:"place"`
}

// RecordDetail extends RecordView with the owner's display info for the
// detail page header.
type RecordDetail struct {
	RecordView
	Owner UserInfo `json:"owner"`
}
