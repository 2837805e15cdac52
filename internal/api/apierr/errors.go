package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nlebedev/chardraft/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeWrongPassword    = "WRONG_PASSWORD"
	CodeDraftNotFound    = "DRAFT_NOT_FOUND"
	CodeDraftExists      = "DRAFT_EXISTS"
	CodeDraftInProgress  = "DRAFT_IN_PROGRESS"
	CodeUnknownGame      = "UNKNOWN_GAME"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeWrongState       = "WRONG_STATE"
	CodeInvalidTurn      = "INVALID_TURN"
	CodeInsufficientPool = "INSUFFICIENT_POOL"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// BadRequest builds a 400 error with the given message
func BadRequest(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrWrongPassword):
		return &httpError{http.StatusForbidden, APIError{CodeWrongPassword, "Incorrect password"}}
	case errors.Is(err, model.ErrDraftNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDraftNotFound, "Draft not found"}}
	case errors.Is(err, model.ErrDraftExists):
		return &httpError{http.StatusConflict, APIError{CodeDraftExists, "Draft name already taken"}}
	case errors.Is(err, model.ErrDraftInProgress):
		return &httpError{http.StatusConflict, APIError{CodeDraftInProgress, "Draft is in progress"}}
	case errors.Is(err, model.ErrUnknownGame):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownGame, "Unknown game id"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrWrongState):
		return &httpError{http.StatusConflict, APIError{CodeWrongState, "Action not allowed in current state"}}
	case errors.Is(err, model.ErrNoLock):
		return &httpError{http.StatusConflict, APIError{CodeWrongState, "Player has no locked character"}}
	case errors.Is(err, model.ErrInvalidTurn):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTurn, "Player cannot take a turn"}}
	case errors.Is(err, model.ErrInsufficientPool):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPool, "Not enough characters to allocate"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}
