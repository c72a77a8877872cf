package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readscape/internal/auth"
	"readscape/internal/model"
	"readscape/internal/service"
)

// ProfileHandler handles the caller's own profile.
type ProfileHandler struct {
	identity service.IdentityService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(identity service.IdentityService) *ProfileHandler {
	return &ProfileHandler{identity: identity}
}

// ProfileRequest carries all four profile fields. Omitted fields are cleared.
type ProfileRequest struct {
	Bio       *string `json:"bio"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	TikTok    *string `json:"tiktok"`
}

// UpdateProfile godoc
// @Summary Replace the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return invalid("invalid request body")
	}

	profile := model.Profile{
		Bio:       req.Bio,
		Instagram: req.Instagram,
		Facebook:  req.Facebook,
		TikTok:    req.TikTok,
	}
	if err := h.identity.UpdateProfile(c.Request().Context(), auth.UserID(c), profile); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated successfully"})
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.identity.GetUser(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
