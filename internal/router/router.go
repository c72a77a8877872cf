package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"readscape/internal/auth"
	"readscape/internal/config"
	"readscape/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authenticator *auth.Authenticator,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	libraryHandler *handler.LibraryHandler,
	profileHandler *handler.ProfileHandler,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/covers/*", bookHandler.GetCover)

	// Secured routes. The middleware is attached per route so unknown paths
	// still answer 404 instead of 401.
	secured := auth.RequireAuth(authenticator)
	numericID := handler.NumericParam("id")

	e.POST("/logout", authHandler.Logout, secured)

	e.GET("/books", bookHandler.ListBooks, secured)
	e.GET("/books/:id/content", bookHandler.GetBookContent, numericID, secured)

	e.POST("/save-book", libraryHandler.SaveBook, secured)
	e.GET("/saved-books", libraryHandler.ListSaved, secured)
	e.DELETE("/saved-books/:id", libraryHandler.UnsaveBook, numericID, secured)

	e.GET("/user/profile", profileHandler.GetProfile, secured)
	e.PUT("/user/profile", profileHandler.UpdateProfile, secured)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
