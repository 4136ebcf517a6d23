package service

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/model"
)

// MaxCommentLength bounds comment content; exactly this many characters
// is still accepted.
const MaxCommentLength = 1000

// CommentStore is the slice of the comment repository the service uses.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) (*model.CommentView, error)
	ListByRecord(ctx context.Context, recordID uint64) ([]model.CommentView, error)
}

// CommentService reads and appends the comment thread of a record.
// Both operations require view access to the parent record; the thread
// itself is append-only. Nothing at this layer stops the record owner
// from commenting: hiding the compose form from owners is presentation
// policy, not a data invariant.
type CommentService struct {
	comments CommentStore
	records  RecordStore
	access   *AccessService
}

func NewCommentService(comments CommentStore, records RecordStore, access *AccessService) *CommentService {
	return &CommentService{comments: comments, records: records, access: access}
}

// ListForRecord returns the thread ascending by creation time, after
// checking the viewer may see the parent record.
func (s *CommentService) ListForRecord(ctx context.Context, viewer string, recordID uint64) ([]model.CommentView, error) {
	if err := s.requireAccess(ctx, viewer, recordID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, apperror.Upstream("listing comments", err)
	}
	return comments, nil
}

// Add appends a comment to the record's thread. Content is trimmed and
// must be non-empty and at most 1000 characters; validation runs before
// the access check touches the store, so malformed input never causes
// reads or writes.
func (s *CommentService) Add(ctx context.Context, viewer string, recordID uint64, content string) (*model.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content", "comment is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, apperror.Validation("content", "comment must be 1000 characters or less")
	}

	if err := s.requireAccess(ctx, viewer, recordID); err != nil {
		return nil, err
	}

	view, err := s.comments.Create(ctx, &model.Comment{
		RecordID: recordID,
		UserID:   viewer,
		Content:  content,
	})
	if err != nil {
		return nil, apperror.Upstream("creating comment", err)
	}
	return view, nil
}

// requireAccess loads the parent record and applies the visibility
// rule, failing closed when the friendship lookup errors. Denied access
// is indistinguishable from a missing record.
func (s *CommentService) requireAccess(ctx context.Context, viewer string, recordID uint64) error {
	detail, err := s.records.GetDetail(ctx, recordID)
	if err != nil {
		if isNotFound(err) {
			return err
		}
		return apperror.Upstream("loading record", err)
	}
	ok, err := s.access.CanView(ctx, viewer, &detail.Record)
	if err != nil {
		log.Printf("comments: friendship check for %s on record %d failed: %v", viewer, recordID, err)
		ok = false
	}
	if !ok {
		return apperror.NotFound("record")
	}
	return nil
}
