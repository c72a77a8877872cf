package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readscape/internal/auth"
	"readscape/internal/service"
)

// LibraryHandler handles saved-book endpoints.
type LibraryHandler struct {
	library service.LibraryService
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(library service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// SaveBookRequest represents a save request.
type SaveBookRequest struct {
	BookID uint `json:"book_id" validate:"required"`
}

// SaveBook godoc
// @Summary Save a book to the library
// @Tags library
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveBookRequest true "Book to save"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /save-book [post]
func (h *LibraryHandler) SaveBook(c echo.Context) error {
	var req SaveBookRequest
	if err := c.Bind(&req); err != nil {
		return invalid("Book ID required")
	}
	if err := c.Validate(&req); err != nil {
		return invalid("Book ID required")
	}

	if err := h.library.SaveBook(c.Request().Context(), auth.UserID(c), req.BookID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Book saved successfully"})
}

// ListSaved godoc
// @Summary List saved books
// @Description Most recently saved first.
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param category query string false "Exact category"
// @Success 200 {array} model.Book
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /saved-books [get]
func (h *LibraryHandler) ListSaved(c echo.Context) error {
	books, err := h.library.ListSaved(c.Request().Context(), auth.UserID(c), categoryFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// UnsaveBook godoc
// @Summary Remove a book from the library
// @Tags library
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /saved-books/{id} [delete]
func (h *LibraryHandler) UnsaveBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.library.UnsaveBook(c.Request().Context(), auth.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Book removed successfully"})
}
