package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"configuration", NewConfigurationError("missing vars", nil), CodeConfiguration, http.StatusInternalServerError},
		{"connection", NewConnectionError("pool down", errors.New("refused")), CodeConnection, http.StatusServiceUnavailable},
		{"classification", NewClassificationError("bad response", nil), CodeClassification, http.StatusBadGateway},
		{"persistence", NewPersistenceError("tx failed", nil), CodePersistence, http.StatusInternalServerError},
		{"validation", NewValidationError("bad input", nil), CodeValidation, http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"not found", NewNotFound("ticket", nil), CodeNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tt.err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			assert.Equal(t, tt.wantStatus, domainErr.HTTPStatus)
			assert.True(t, HasCode(tt.err, tt.wantCode))
		})
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("failed to commit transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("batch aborted: %w", NewClassificationError("model call failed", nil))
	assert.True(t, HasCode(err, CodeClassification))
	assert.False(t, HasCode(err, CodePersistence))
}

func TestToDomainError(t *testing.T) {
	t.Run("passes through domain errors", func(t *testing.T) {
		err := NewValidationError("bad", nil)
		assert.Equal(t, CodeValidation, ToDomainError(err).Code)
	})

	t.Run("maps pgx no rows to not found", func(t *testing.T) {
		assert.Equal(t, CodeNotFound, ToDomainError(pgx.ErrNoRows).Code)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		mapped := ToDomainError(errors.New("boom"))
		assert.Equal(t, CodeInternal, mapped.Code)
		assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})
}
