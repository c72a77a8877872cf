package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"readscape/internal/service"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	catalog service.CatalogService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(catalog service.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param category query string false "Exact category"
// @Success 200 {array} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.catalog.ListBooks(c.Request().Context(), categoryFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBookContent godoc
// @Summary Get book text
// @Tags books
// @Produce plain
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/{id}/content [get]
func (h *BookHandler) GetBookContent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	content, err := h.catalog.GetBookContent(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.String(http.StatusOK, content)
}

// GetCover godoc
// @Summary Get cover image
// @Tags books
// @Produce octet-stream
// @Param filename path string true "Cover file name"
// @Success 200 {file} file
// @Failure 404 {object} errors.ErrorResponse
// @Router /covers/{filename} [get]
func (h *BookHandler) GetCover(c echo.Context) error {
	// echo routes on RawPath when the request carries one and leaves the
	// wildcard escaped; otherwise it is already decoded.
	name := c.Param("*")
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return echo.ErrNotFound
		}
		name = unescaped
	}
	cover, err := h.catalog.GetCover(c.Request().Context(), name)
	if err != nil {
		return fail(c, err)
	}
	return c.Blob(http.StatusOK, cover.ContentType, cover.Data)
}
