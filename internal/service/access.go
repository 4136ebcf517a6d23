// Package service holds the domain logic between HTTP handlers and the
// repositories: the record visibility rule, the query engine with its
// derived stats, record lifecycle validation, catalog growth, the
// comment thread and friendship requests. Services accept small store
// interfaces so tests can run them against in-memory fakes.
package service

import (
	"context"

	"github.com/ayatok/cinemalog/internal/model"
)

// FriendshipStore is the slice of the friend repository the access rule
// needs: an order-independent accepted-pair lookup.
type FriendshipStore interface {
	AcceptedBetween(ctx context.Context, a, b string) (bool, error)
}

// AccessService decides whether a viewer may see a record.
type AccessService struct {
	friends FriendshipStore
}

func NewAccessService(friends FriendshipStore) *AccessService {
	return &AccessService{friends: friends}
}

// CanView returns true when the viewer owns the record, or when an
// accepted friendship links the viewer and the owner in either
// direction. A failed friendship lookup is returned as an error rather
// than being folded into a yes/no answer; callers are expected to fail
// closed (treat the viewer as having no access) after logging it.
func (s *AccessService) CanView(ctx context.Context, viewer string, rec *model.Record) (bool, error) {
	if viewer == rec.UserID {
		return true, nil
	}
	return s.friends.AcceptedBetween(ctx, viewer, rec.UserID)
}
