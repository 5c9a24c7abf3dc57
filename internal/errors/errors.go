package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrLotNotFound is returned when a parking lot is not found.
	ErrLotNotFound = errors.New("parking lot not found")
	// ErrSpotNotFound is returned when a parking spot is not found.
	ErrSpotNotFound = errors.New("parking spot not found")
	// ErrReservationNotFound is returned when a reservation is not found.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoAvailableSpot is returned when a lot has no free spot to book.
	ErrNoAvailableSpot = errors.New("no available spot in this lot")
	// ErrAlreadyReleased is returned when releasing a closed reservation.
	ErrAlreadyReleased = errors.New("reservation has already been released")
	// ErrNotReservationOwner is returned when a user releases someone else's reservation.
	ErrNotReservationOwner = errors.New("reservation belongs to another user")
	// ErrLotHasReservations is returned when deleting a lot with reservation history.
	ErrLotHasReservations = errors.New("lot has spots with reservation history and cannot be deleted")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrLotNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOT_NOT_FOUND")
	case ErrSpotNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SPOT_NOT_FOUND")
	case ErrReservationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESERVATION_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrNoAvailableSpot:
		return NewHTTPError(http.StatusConflict, err.Error(), "NO_AVAILABLE_SPOT")
	case ErrAlreadyReleased:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_RELEASED")
	case ErrNotReservationOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_RESERVATION_OWNER")
	case ErrLotHasReservations:
		return NewHTTPError(http.StatusConflict, err.Error(), "LOT_HAS_RESERVATIONS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
