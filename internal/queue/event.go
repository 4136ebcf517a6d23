// Package queue publishes domain events to RabbitMQ and hosts the
// in-process consumer that turns them into an activity log. Publishing
// is best-effort: a broker outage never fails the originating request.
package queue

import "time"

// QueueRecordLogged is the queue that record.logged events are
// published to and consumed from.
const QueueRecordLogged = "record.logged"

// RecordLoggedEvent is emitted after a watch record is created.
type RecordLoggedEvent struct {
	RecordID   uint64    `json:"record_id"`
	UserID     string    `json:"user_id"`
	MovieID    uint64    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	WatchedAt  time.Time `json:"watched_at"`
	Rating     *int      `json:"rating,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}
