package copilot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrReauthRequired   = errors.New("re-authentication required")
	ErrAccessDenied     = errors.New("access denied")
	ErrRetryLater       = errors.New("retry later")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// APIError is returned for any non-2xx response from the search endpoint.
// Body holds the raw response body so callers can inspect it themselves.
type APIError struct {
	StatusCode int
	Status     string
	Code       string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("Graph error: %s - %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// Is lets callers match an APIError against the sentinel error categories.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrReauthRequired:
		return e.StatusCode == http.StatusUnauthorized
	case ErrAccessDenied:
		return e.StatusCode == http.StatusForbidden
	case ErrResourceNotFound:
		return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
	case ErrRetryLater:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	case ErrInvalidRequest:
		return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError &&
			e.StatusCode != http.StatusUnauthorized && e.StatusCode != http.StatusForbidden &&
			e.StatusCode != http.StatusNotFound && e.StatusCode != http.StatusGone &&
			e.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// newAPIError builds an APIError from a failed response, pulling the Graph
// error code and message out of the body when it has the usual shape.
func newAPIError(res *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Body:       body,
	}

	var graphError struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &graphError); err == nil {
		apiErr.Code = graphError.Error.Code
		apiErr.Message = graphError.Error.Message
	}

	return apiErr
}
