package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayatok/cinemalog/internal/service"
)

// FriendHandler serves the friendship endpoints: sending requests,
// responding to them, and the grouped friendship list.
type FriendHandler struct {
	Friends *service.FriendService
}

func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{Friends: friends}
}

type friendRequestReq struct {
	RequestedID string `json:"requested_id"`
}

type friendRespondReq struct {
	Accept bool `json:"accept"`
}

// List returns the caller's friendships grouped into accepted, incoming
// and outgoing.
func (h *FriendHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	list, err := h.Friends.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Request sends a friendship request to another user.
func (h *FriendHandler) Request(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req friendRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	f, err := h.Friends.Request(c.Request().Context(), userID, req.RequestedID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// Respond accepts or rejects a pending request addressed to the caller.
func (h *FriendHandler) Respond(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req friendRespondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Friends.Respond(c.Request().Context(), userID, id, req.Accept); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
