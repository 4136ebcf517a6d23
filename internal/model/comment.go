package model

import "time"

// Comment is a row in the `comments` table: a remark left on a record
// by some user. The thread is append-only; no edit or delete operation
// exists, and comments are always read in ascending creation order.
//
// Fields:
//  ID        – auto-assigned primary key.
//  RecordID  – record the comment belongs to.
//  UserID    – comment author (users.id).
//  Content   – comment text, at most 1000 characters.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Comment struct {
	ID        uint64    `json:"id"`
	RecordID  uint64    `json:"record_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView is a comment joined with its author's display info.
type CommentView struct {
	Comment
	Author UserInfo `json:"author"`
}
