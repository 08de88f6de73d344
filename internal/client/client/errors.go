package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable matches every *NetworkError: the API could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches API errors with status 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches API errors with status 404.
	ErrNotFound = errors.New("not found")
)

// ErrorCategory is the coarse class of an application failure.
type ErrorCategory string

const (
	CategoryUnauthorized ErrorCategory = "unauthorized"
	CategoryNotFound     ErrorCategory = "not_found"
	CategoryValidation   ErrorCategory = "validation"
	CategoryClient       ErrorCategory = "client"
	CategoryServer       ErrorCategory = "server"
)

func categorize(status int) ErrorCategory {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return CategoryUnauthorized
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return CategoryValidation
	case status >= http.StatusInternalServerError:
		return CategoryServer
	default:
		return CategoryClient
	}
}

// APIError is an error response received from the API.
// Message is the human-readable text found in the body, if any.
type APIError struct {
	Method   string
	Path     string
	Status   int
	Category ErrorCategory
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Category == CategoryUnauthorized
	case ErrNotFound:
		return e.Category == CategoryNotFound
	}
	return false
}

// NetworkError means no response was received at all.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnavailable }

// UnavailableMessage is shown for failures where the API could not be reached.
const UnavailableMessage = "Server unavailable, please try again"

// UserMessage picks the text to show for err: the API-provided message when
// there is one, a generic retry notice for network failures, else fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return UnavailableMessage
	}
	return fallback
}
