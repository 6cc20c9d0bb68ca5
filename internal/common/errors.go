package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// AppError carries the failure taxonomy the route handlers map to HTTP
// status codes. Kind drives the status, Message goes to the client.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

type ErrorKind int

const (
	KindValidation ErrorKind = iota // malformed or missing input
	KindConflict                    // duplicate unique field, duplicate friend edge
	KindUnauthorized                // missing/invalid/expired token, wrong password
	KindNotFound                    // missing entity by id
	KindForbidden                   // non-owner attempting owner-only mutation
	KindInternal                    // persistence or infrastructure failure
)

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// StatusCode maps an error to its HTTP status. Duplicate-field conflicts
// answer 400 to match the original API contract, not 409.
func StatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the JSON error body for err. Internal failures are
// logged with their cause and answered with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		message = "internal server error"
	}
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}
