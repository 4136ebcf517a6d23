package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayatok/cinemalog/internal/model"
)

func TestCanViewOwner(t *testing.T) {
	// The owner always sees their own record, friendship data or not.
	access := NewAccessService(newMemFriendStore())
	rec := &model.Record{ID: 1, UserID: "alice"}

	ok, err := access.CanView(context.Background(), "alice", rec)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewStranger(t *testing.T) {
	friends := newMemFriendStore()
	friends.accept("alice", "carol") // unrelated pair
	access := NewAccessService(friends)
	rec := &model.Record{ID: 1, UserID: "alice"}

	ok, err := access.CanView(context.Background(), "bob", rec)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanViewAcceptedFriendEitherDirection(t *testing.T) {
	rec := &model.Record{ID: 1, UserID: "alice"}

	// Viewer was the requester.
	friends := newMemFriendStore()
	friends.accept("bob", "alice")
	ok, err := NewAccessService(friends).CanView(context.Background(), "bob", rec)
	require.NoError(t, err)
	assert.True(t, ok)

	// Viewer was the requested side.
	friends = newMemFriendStore()
	friends.accept("alice", "bob")
	ok, err = NewAccessService(friends).CanView(context.Background(), "bob", rec)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanViewPendingGrantsNothing(t *testing.T) {
	friends := newMemFriendStore()
	f := &model.Friendship{RequesterID: "bob", RequestedID: "alice"}
	require.NoError(t, friends.Create(context.Background(), f))

	ok, err := NewAccessService(friends).CanView(context.Background(), "bob", &model.Record{ID: 1, UserID: "alice"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanViewSurfacesLookupError(t *testing.T) {
	// A failed lookup is not an answer: the error reaches the caller,
	// who decides the safe default.
	friends := newMemFriendStore()
	friends.failWith = errors.New("connection reset")

	ok, err := NewAccessService(friends).CanView(context.Background(), "bob", &model.Record{ID: 1, UserID: "alice"})
	assert.Error(t, err)
	assert.False(t, ok)
}
