package service

import (
	"context"
	"strings"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// FriendStore is the slice of the friend repository the service uses.
type FriendStore interface {
	FriendshipStore
	Create(ctx context.Context, f *model.Friendship) error
	Respond(ctx context.Context, id uint64, requestedID, status string) error
	ListForUser(ctx context.Context, userID string) ([]model.Friendship, error)
}

// FriendService manages friendship requests. Accepted friendships are
// what the access rule consults; everything here only moves rows
// between pending, accepted and rejected.
type FriendService struct {
	friends FriendStore
}

func NewFriendService(friends FriendStore) *FriendService {
	return &FriendService{friends: friends}
}

// Request sends a friendship request from requester to requested. A
// pair that is already linked by an accepted friendship is rejected to
// avoid piling up redundant rows.
func (s *FriendService) Request(ctx context.Context, requester, requested string) (*model.Friendship, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return nil, apperror.Validation("requested_id", "requested user is required")
	}
	if requested == requester {
		return nil, apperror.Validation("requested_id", "cannot befriend yourself")
	}

	linked, err := s.friends.AcceptedBetween(ctx, requester, requested)
	if err != nil {
		return nil, apperror.Upstream("checking friendship", err)
	}
	if linked {
		return nil, apperror.Validation("requested_id", "already friends")
	}

	f := &model.Friendship{RequesterID: requester, RequestedID: requested}
	if err := s.friends.Create(ctx, f); err != nil {
		return nil, apperror.Upstream("creating friend request", err)
	}
	return f, nil
}

// Respond resolves a pending request addressed to the responder. Accept
// grants mutual record visibility; reject closes the request. Only the
// requested user can respond, which the store enforces in its UPDATE
// predicate; anyone else gets not-found.
func (s *FriendService) Respond(ctx context.Context, responder string, id uint64, accept bool) error {
	status := model.FriendStatusRejected
	if accept {
		status = model.FriendStatusAccepted
	}
	if err := s.friends.Respond(ctx, id, responder, status); err != nil {
		if isNotFound(err) {
			return err
		}
		return apperror.Upstream("responding to friend request", err)
	}
	return nil
}

// FriendList splits the user's friendship rows by state: accepted
// friendships on either side, plus pending requests addressed to the
// user (incoming) and sent by the user (outgoing).
type FriendList struct {
	Accepted []model.Friendship `json:"accepted"`
	Incoming []model.Friendship `json:"incoming"`
	Outgoing []model.Friendship `json:"outgoing"`
}

// List returns the user's friendships grouped by state. Rejected rows
// are kept out of the response entirely.
func (s *FriendService) List(ctx context.Context, userID string) (*FriendList, error) {
	rows, err := s.friends.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperror.Upstream("listing friendships", err)
	}
	out := &FriendList{
		Accepted: []model.Friendship{},
		Incoming: []model.Friendship{},
		Outgoing: []model.Friendship{},
	}
	for _, f := range rows {
		switch {
		case f.Status == model.FriendStatusAccepted:
			out.Accepted = append(out.Accepted, f)
		case f.Status == model.FriendStatusPending && f.RequestedID == userID:
			out.Incoming = append(out.Incoming, f)
		case f.Status == model.FriendStatusPending && f.RequesterID == userID:
			out.Outgoing = append(out.Outgoing, f)
		}
	}
	return out, nil
}
