package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned when no user matches the username and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrBookNotFound is returned when a book id does not exist in the catalog.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookFileNotFound is returned when a book exists but its content file does not.
	ErrBookFileNotFound = errors.New("book file not found")
	// ErrCoverNotFound is returned when a cover image does not exist.
	ErrCoverNotFound = errors.New("cover not found")
	// ErrAlreadySaved is returned when the book is already in the user's library.
	ErrAlreadySaved = errors.New("book already saved")
	// ErrNotInLibrary is returned when unsaving a book the user never saved.
	ErrNotInLibrary = errors.New("book not found in library")
	// ErrTokenMissing is returned when a request carries no bearer credential.
	ErrTokenMissing = errors.New("token is missing")
	// ErrInvalidToken is returned when a bearer credential does not resolve to a user.
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// mappings holds the client-facing message for every domain error.
var mappings = []struct {
	err     error
	status  int
	message string
	code    string
}{
	{ErrDuplicateUsername, http.StatusBadRequest, "Username already exists", "USERNAME_TAKEN"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS"},
	{ErrUserNotFound, http.StatusNotFound, "User not found", "USER_NOT_FOUND"},
	{ErrBookNotFound, http.StatusNotFound, "Book not found", "BOOK_NOT_FOUND"},
	{ErrBookFileNotFound, http.StatusNotFound, "Book file not found", "BOOK_FILE_NOT_FOUND"},
	{ErrCoverNotFound, http.StatusNotFound, "Cover not found", "COVER_NOT_FOUND"},
	{ErrAlreadySaved, http.StatusBadRequest, "Book already saved", "ALREADY_SAVED"},
	{ErrNotInLibrary, http.StatusNotFound, "Book not found in library", "NOT_IN_LIBRARY"},
	{ErrTokenMissing, http.StatusUnauthorized, "Token is missing!", "TOKEN_MISSING"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid token!", "INVALID_TOKEN"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched too; anything unknown becomes a 500.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.message, m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// Validation builds the 400 returned for missing or malformed input.
func Validation(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// IsInternal reports whether err has no domain mapping.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode == http.StatusInternalServerError
}
