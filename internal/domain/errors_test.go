package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrValidation,
		ErrForbidden,
		ErrUnavailable,
		ErrMalformed,
		ErrEmptyCorpus,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "chat_id",
			message:     "chat not found",
			expectedMsg: "validation failed for chat_id: chat not found",
		},
		{
			name:        "without field",
			field:       "",
			message:     "can't parse entities",
			expectedMsg: "validation failed: can't parse entities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)
			assert.True(t, IsValidation(err))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("send message", "invalid token")

	assert.Equal(t, `operation "send message" forbidden: invalid token`, err.Error())
	assert.True(t, IsForbidden(err))

	bare := NewForbiddenError("fetch headlines", "")
	assert.Equal(t, `operation "fetch headlines" forbidden`, bare.Error())
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("newsapi", "connection refused")

	assert.Equal(t, `service "newsapi" unavailable: connection refused`, err.Error())
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsForbidden(err))
}

func TestRateLimitedError(t *testing.T) {
	err := NewRateLimitedError("telegram", 3*time.Second)

	assert.Equal(t, `service "telegram" unavailable: rate limit exceeded (retry after 3s)`, err.Error())
	require.ErrorIs(t, err, ErrUnavailable)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3*time.Second, unavailable.RetryAfter)
}

func TestMalformedError(t *testing.T) {
	err := NewMalformedError("newsapi", "unexpected EOF")

	assert.Equal(t, "malformed response from newsapi: unexpected EOF", err.Error())
	assert.True(t, IsMalformed(err))
}

func TestWrappedErrors_StillMatchSentinels(t *testing.T) {
	base := NewUnavailableError("telegram", "timeout")
	wrapped := fmt.Errorf("publishing post: %w", base)

	assert.True(t, IsUnavailable(wrapped))

	var unavailable *UnavailableError
	require.ErrorAs(t, wrapped, &unavailable)
	assert.Equal(t, "telegram", unavailable.Service)
}
