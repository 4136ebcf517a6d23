package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayatok/cinemalog/internal/service"
)

// CatalogHandler serves the shared movie and place catalogs backing the
// record form's pickers.
type CatalogHandler struct {
	Catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

type movieReq struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseYear string `json:"release_year"`
	Genre       string `json:"genre"`
}

type placeReq struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	PlaceType string `json:"place_type"`
}

// ListMovies returns all catalog movies sorted by title.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies, err := h.Catalog.ListMovies(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// CreateMovie adds a movie to the shared catalog.
func (h *CatalogHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, err := h.Catalog.AddMovie(c.Request().Context(), service.MovieInput{
		Title:       req.Title,
		Director:    req.Director,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// ListPlaces returns all catalog places sorted by name.
func (h *CatalogHandler) ListPlaces(c echo.Context) error {
	places, err := h.Catalog.ListPlaces(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"places": places})
}

// CreatePlace adds a viewing venue to the shared catalog.
func (h *CatalogHandler) CreatePlace(c echo.Context) error {
	var req placeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, err := h.Catalog.AddPlace(c.Request().Context(), service.PlaceInput{
		Name:      req.Name,
		Address:   req.Address,
		PlaceType: req.PlaceType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
