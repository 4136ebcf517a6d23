package repository

import (
	"context"
	"database/sql"

	"github.com/ayatok/cinemalog/internal/model"
)

// CommentRepo manages the append-only comment thread attached to each
// record. There is no update or delete; rows are only inserted and read
// back in ascending creation order.
type CommentRepo struct{ db *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a comment and returns it joined with the author's
// display info, matching the shape the detail page appends to its
// thread.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) (*model.CommentView, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (record_id, user_id, content) VALUES (?,?,?)",
		c.RecordID, c.UserID, c.Content)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var (
		v           model.CommentView
		displayName sql.NullString
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT c.id, c.record_id, c.user_id, c.content, c.created_at, c.updated_at,
		        u.display_name, u.email
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.id = ?`,
		id).Scan(&v.ID, &v.RecordID, &v.UserID, &v.Content, &v.CreatedAt, &v.UpdatedAt,
		&displayName, &v.Author.Email)
	if err != nil {
		return nil, err
	}
	v.Author.DisplayName = nullStr(displayName)
	return &v, nil
}

// ListByRecord returns the record's comments ascending by creation
// time, each joined with its author.
func (r *CommentRepo) ListByRecord(ctx context.Context, recordID uint64) ([]model.CommentView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.record_id, c.user_id, c.content, c.created_at, c.updated_at,
		        u.display_name, u.email
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.record_id = ?
		 ORDER BY c.created_at ASC, c.id ASC`,
		recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CommentView{}
	for rows.Next() {
		var (
			v           model.CommentView
			displayName sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.RecordID, &v.UserID, &v.Content, &v.CreatedAt, &v.UpdatedAt,
			&displayName, &v.Author.Email); err != nil {
			return nil, err
		}
		v.Author.DisplayName = nullStr(displayName)
		out = append(out, v)
	}
	return out, rows.Err()
}
