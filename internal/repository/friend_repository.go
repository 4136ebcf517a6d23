package repository

import (
	"context"
	"database/sql"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// FriendRepo manages persistence for friendship rows. Rows are stored
// directed (requester -> requested) but visibility checks treat the
// pair as unordered.
type FriendRepo struct{ db *sql.DB }

func NewFriendRepo(db *sql.DB) *FriendRepo { return &FriendRepo{db: db} }

// AcceptedBetween reports whether an accepted friendship exists between
// the two users, matching the pair in either direction.
func (r *FriendRepo) AcceptedBetween(ctx context.Context, a, b string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM friends
		 WHERE status = ?
		   AND ((requester_id = ? AND requested_id = ?) OR (requester_id = ? AND requested_id = ?))
		 LIMIT 1`,
		model.FriendStatusAccepted, a, b, b, a).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a pending friendship request and populates the
// generated ID and timestamps.
func (r *FriendRepo) Create(ctx context.Context, f *model.Friendship) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO friends (requester_id, requested_id, status) VALUES (?,?,?)",
		f.RequesterID, f.RequestedID, model.FriendStatusPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	f.Status = model.FriendStatusPending
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM friends WHERE id=?",
		f.ID).Scan(&f.CreatedAt, &f.UpdatedAt)
}

// Respond resolves a pending request addressed to the given user. The
// predicate pins both the recipient and the pending status, so a
// stranger responding, a requester answering their own request, or a
// double response all affect zero rows and map to NotFound.
func (r *FriendRepo) Respond(ctx context.Context, id uint64, requestedID, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE friends SET status=? WHERE id=? AND requested_id=? AND status=?",
		status, id, requestedID, model.FriendStatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("friend request")
	}
	return nil
}

// ListForUser returns every friendship row that involves the user,
// newest first, on either side of the relation.
func (r *FriendRepo) ListForUser(ctx context.Context, userID string) ([]model.Friendship, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, requester_id, requested_id, status, created_at, updated_at
		 FROM friends
		 WHERE requester_id = ? OR requested_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Friendship{}
	for rows.Next() {
		var f model.Friendship
		if err := rows.Scan(&f.ID, &f.RequesterID, &f.RequestedID, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
