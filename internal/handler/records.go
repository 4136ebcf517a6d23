package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayatok/cinemalog/internal/apperror"
	"github.com/ayatok/cinemalog/internal/service"
)

// RecordHandler serves the watch-record endpoints: listing with
// filters, the detail page, and the create/update/delete lifecycle.
type RecordHandler struct {
	Records *service.RecordService
	BaseURL string
}

func NewRecordHandler(records *service.RecordService, baseURL string) *RecordHandler {
	return &RecordHandler{Records: records, BaseURL: strings.TrimRight(baseURL, "/")}
}

type recordReq struct {
	MovieID   uint64  `json:"movie_id"`
	PlaceID   *uint64 `json:"place_id"`
	WatchedAt string  `json:"watched_at"` // YYYY-MM-DD
	Memo      string  `json:"memo"`
	Rating    *int    `json:"rating"`
}

func (r recordReq) toInput() (service.RecordInput, error) {
	in := service.RecordInput{
		MovieID: r.MovieID,
		PlaceID: r.PlaceID,
		Memo:    r.Memo,
		Rating:  r.Rating,
	}
	if r.WatchedAt != "" {
		t, err := time.Parse("2006-01-02", r.WatchedAt)
		if err != nil {
			return in, apperror.Validation("watched_at", "watched_at must be YYYY-MM-DD")
		}
		in.WatchedAt = t
	}
	return in, nil
}

// List returns the caller's records filtered by the optional `year` and
// `search` query parameters, plus stats over the filtered set and the
// year selector values.
func (h *RecordHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var filter service.ListFilter
	if y := c.QueryParam("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return respondError(c, apperror.Validation("year", "year must be an integer"))
		}
		filter.Year = &year
	}
	filter.Search = c.QueryParam("search")

	res, err := h.Records.List(c.Request().Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create logs a new watch record for the caller.
func (h *RecordHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in, err := req.toInput()
	if err != nil {
		return respondError(c, err)
	}

	rec, err := h.Records.Create(c.Request().Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// Get returns the record detail together with its ready-made share
// payload. Visibility is owner-or-accepted-friend; everyone else gets a
// 404 indistinguishable from a missing record.
func (h *RecordHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	detail, err := h.Records.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"record": detail,
		"share": echo.Map{
			"text": fmt.Sprintf("『%s』を観ました！", detail.Movie.Title),
			"url":  fmt.Sprintf("%s/records/%d", h.BaseURL, detail.ID),
		},
	})
}

// Update rewrites an owned record. Ownership failures surface as 404.
func (h *RecordHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in, err := req.toInput()
	if err != nil {
		return respondError(c, err)
	}

	rec, err := h.Records.Update(c.Request().Context(), userID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete removes an owned record.
func (h *RecordHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Records.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Dashboard returns the landing-page data: recent records plus headline
// aggregates over the caller's full history.
func (h *RecordHandler) Dashboard(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.Records.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
