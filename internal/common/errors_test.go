package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFromStorage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		resource string
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "no rows maps to not found",
			err:      pgx.ErrNoRows,
			resource: "category",
			wantKind: KindNotFound,
			wantMsg:  "category not found",
		},
		{
			name:     "unique violation maps to conflict",
			err:      &pgconn.PgError{Code: "23505"},
			resource: "category",
			wantKind: KindConflict,
			wantMsg:  "category already exists",
		},
		{
			name:     "foreign key violation maps to conflict",
			err:      &pgconn.PgError{Code: "23503"},
			resource: "category",
			wantKind: KindConflict,
		},
		{
			name:     "anything else maps to internal",
			err:      errors.New("connection refused"),
			resource: "category",
			wantKind: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typed := FromStorage(tt.err, tt.resource)
			assert.Equal(t, tt.wantKind, typed.Kind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, typed.Message)
			}
		})
	}
}

func TestFromStorage_NilPassesThrough(t *testing.T) {
	assert.Nil(t, FromStorage(nil, "category"))
}

func TestFromStorage_TypedErrorUnchanged(t *testing.T) {
	typed := Validation("bad input")
	assert.Same(t, typed, FromStorage(typed, "category"))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(Validation("x")))
	assert.Equal(t, http.StatusNotFound, Status(NotFound("x")))
	assert.Equal(t, http.StatusConflict, Status(Conflict("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, Status(Internal("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("untyped")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal("storage operation failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}
