package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// Kind classifies every error that can cross the storage/handler boundary.
// Status-code selection is a pure mapping over it; handlers never pick
// statuses ad hoc.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindInternal
)

// Error is the typed error propagated from repositories to handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never sent to callers
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Postgres error codes that map to a conflict rather than an internal fault.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromStorage translates a storage-layer error into a typed one. pgx.ErrNoRows
// becomes not-found with the given resource name; unique and foreign-key
// violations become conflicts; anything else is internal.
func FromStorage(err error, resource string) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(resource + " not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Conflict(resource+" already exists", err)
		case pgForeignKeyViolation:
			return Conflict(resource+" is referenced by or references another record", err)
		}
	}
	return Internal("storage operation failed", err)
}

// Status returns the HTTP status for a typed error, 500 for anything else.
func Status(err error) int {
	var typed *Error
	if !errors.As(err, &typed) {
		return http.StatusInternalServerError
	}
	switch typed.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the uniform error body: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONError writes the uniform error response. The underlying cause is
// logged server-side only; callers get the stable message.
func JSONError(c echo.Context, err error) error {
	var typed *Error
	if !errors.As(err, &typed) {
		typed = Internal("internal server error", err)
	}
	if typed.Err != nil {
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, typed.Err)
	}
	return c.JSON(Status(typed), ErrorResponse{Error: typed.Message})
}
