package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

type commentFixture struct {
	svc      *CommentService
	comments *memCommentStore
	records  *memRecordStore
	friends  *memFriendStore
	recordID uint64
}

// newCommentFixture seeds one record owned by alice.
func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	movies := newMemMovieStore()
	records := newMemRecordStore(movies)
	friends := newMemFriendStore()
	comments := newMemCommentStore()
	records.seed(model.RecordView{
		Record: model.Record{UserID: "alice", MovieID: 1, WatchedAt: date(2024, 4, 12)},
		Movie:  model.MovieInfo{Title: "Ran"},
	})
	return &commentFixture{
		svc:      NewCommentService(comments, records, NewAccessService(friends)),
		comments: comments,
		records:  records,
		friends:  friends,
		recordID: 1,
	}
}

func TestAddCommentLengthBounds(t *testing.T) {
	f := newCommentFixture(t)
	f.friends.accept("alice", "bob")

	// Exactly 1000 characters is accepted.
	v, err := f.svc.Add(context.Background(), "bob", f.recordID, strings.Repeat("a", MaxCommentLength))
	require.NoError(t, err)
	assert.Equal(t, "bob", v.UserID)

	// 1001 characters is rejected.
	_, err = f.svc.Add(context.Background(), "bob", f.recordID, strings.Repeat("a", MaxCommentLength+1))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// Whitespace-only content is rejected before any store access.
	_, err = f.svc.Add(context.Background(), "bob", f.recordID, "   \n ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAddCommentRequiresViewAccess(t *testing.T) {
	f := newCommentFixture(t)

	// A stranger cannot comment and cannot tell the record exists.
	_, err := f.svc.Add(context.Background(), "bob", f.recordID, "nice pick")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, f.comments.rows)

	// Once accepted, the friend can comment.
	f.friends.accept("alice", "bob")
	_, err = f.svc.Add(context.Background(), "bob", f.recordID, "nice pick")
	assert.NoError(t, err)
}

func TestOwnerMayCommentAtDataLayer(t *testing.T) {
	// Hiding the compose form from owners is presentation policy; the
	// data layer accepts an owner comment.
	f := newCommentFixture(t)

	v, err := f.svc.Add(context.Background(), "alice", f.recordID, "my own note")
	require.NoError(t, err)
	assert.Equal(t, "alice", v.UserID)
}

func TestListCommentsAscending(t *testing.T) {
	f := newCommentFixture(t)
	f.friends.accept("alice", "bob")

	for _, text := range []string{"first", "second", "third"} {
		_, err := f.svc.Add(context.Background(), "bob", f.recordID, text)
		require.NoError(t, err)
	}

	list, err := f.svc.ListForRecord(context.Background(), "alice", f.recordID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "third", list[2].Content)
	assert.True(t, list[0].CreatedAt.Before(list[2].CreatedAt))
}

func TestListCommentsDeniedForStranger(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.ListForRecord(context.Background(), "bob", f.recordID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListCommentsUnknownRecord(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.ListForRecord(context.Background(), "alice", 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
