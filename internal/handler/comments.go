package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayatok/cinemalog/internal/service"
)

// CommentHandler serves the comment thread under a record's detail
// page. Both endpoints require view access to the record; access
// failures look exactly like a missing record.
type CommentHandler struct {
	Comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

type commentReq struct {
	Content string `json:"content"`
}

// List returns the record's comments oldest first.
func (h *CommentHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	recordID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	list, err := h.Comments.ListForRecord(c.Request().Context(), userID, recordID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": list})
}

// Create appends a comment to the record's thread.
func (h *CommentHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	recordID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	v, err := h.Comments.Add(c.Request().Context(), userID, recordID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}
