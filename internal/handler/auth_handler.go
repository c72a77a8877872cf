package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"readscape/internal/auth"
	"readscape/internal/model"
	"readscape/internal/service"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	identity      service.IdentityService
	authenticator *auth.Authenticator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(identity service.IdentityService, authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{identity: identity, authenticator: authenticator}
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse represents a registration response.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalid("Username and password required")
	}
	if err := c.Validate(&req); err != nil {
		return invalid("Username and password required")
	}

	id, err := h.identity.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User created successfully",
		UserID:  id,
	})
}

// Login godoc
// @Summary Login user
// @Description Returns the bearer token to send as "Authorization: Bearer <token>".
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalid("Username and password required")
	}
	if err := c.Validate(&req); err != nil {
		return invalid("Username and password required")
	}

	user, err := h.identity.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := h.authenticator.IssueToken(user)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the presented token. Bare-id tokens cannot be revoked and stay valid.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authenticator.Revoke(c.Request().Context(), auth.IdentityFrom(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
