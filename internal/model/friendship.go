package model

import "time"

// Friendship statuses. A request starts pending and is resolved by the
// requested user to accepted or rejected. Only an accepted row grants
// visibility, and it does so in both directions.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

// Friendship is a row in the `friends` table. The relation is stored
// directed (requester -> requested) but is undirected in effect: a
// record owned by either side is visible to the other once the status
// is accepted, regardless of who initiated the request.
//
// Fields:
//  ID          – auto-assigned primary key.
//  RequesterID – user who sent the request.
//  RequestedID – user who received the request.
//  Status      – pending, accepted or rejected.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Friendship struct {
	ID          uint64    `json:"id"`
	RequesterID string    `json:"requester_id"`
	RequestedID string    `json:"requested_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
