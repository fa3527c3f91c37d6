package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients"
	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

// ErrorResponse is an upstream error body.
// It understands the NewsAPI shape (status/code/message) and the Telegram
// Bot API shape (ok/error_code/description/parameters).
type ErrorResponse struct {
	Status  string `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	OK          *bool               `json:"ok,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters carries Telegram's hints about how to recover from an error.
type ResponseParameters struct {
	RetryAfter int `json:"retry_after,omitempty"`
}

// GetCode returns the symbolic error code, if any.
func (e *ErrorResponse) GetCode() string {
	return e.Code
}

// GetMessage returns the human-readable message from either format.
func (e *ErrorResponse) GetMessage() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Description
}

// RetryAfter returns the back-off hint from the body, or zero.
func (e *ErrorResponse) RetryAfter() time.Duration {
	if e == nil || e.Parameters == nil || e.Parameters.RetryAfter <= 0 {
		return 0
	}

	return time.Duration(e.Parameters.RetryAfter) * time.Second
}

// NewsAPI error codes that map to domain errors.
// See https://newsapi.org/docs/errors.
const (
	ExternalCodeAPIKeyDisabled     = "apiKeyDisabled"
	ExternalCodeAPIKeyExhausted    = "apiKeyExhausted"
	ExternalCodeAPIKeyInvalid      = "apiKeyInvalid"
	ExternalCodeAPIKeyMissing      = "apiKeyMissing"
	ExternalCodeParameterInvalid   = "parameterInvalid"
	ExternalCodeParametersMissing  = "parametersMissing"
	ExternalCodeRateLimited        = "rateLimited"
	ExternalCodeSourcesTooMany     = "sourcesTooMany"
	ExternalCodeSourceDoesNotExist = "sourceDoesNotExist"
)

// ParseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or cannot be parsed.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" && errResp.ErrorCode == 0 {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed exchange to a domain error.
// resp may be nil for transport errors. The caller still owns resp.Body.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	if hint := errResp.RetryAfter(); hint > 0 {
		retryAfter = hint
	}

	if errResp != nil && errResp.GetCode() != "" {
		return MapExternalCode(errResp.GetCode(), errResp.GetMessage(), serviceName, operation, retryAfter)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, retryAfter)
}

// mapClientError translates client-level errors to domain errors.
// Cancellation is passed through so the run can tell a shutdown from an outage.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", operation, err)

	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// mapStatusCode translates HTTP status codes to domain errors.
func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation string, retryAfter time.Duration) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("", message)

	case http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusUnauthorized:
		return domain.NewForbiddenError(operation, "authentication required")

	case http.StatusTooManyRequests:
		return domain.NewRateLimitedError(serviceName, retryAfter)

	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return domain.NewUnavailableError(serviceName, message)

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}
		// Unknown 4xx errors default to validation
		return domain.NewValidationError("", message)
	}
}

// defaultMessageForStatus returns a default message for an HTTP status.
func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}

// MapExternalCode maps a NewsAPI error code to a domain error.
func MapExternalCode(code, message, serviceName, operation string, retryAfter time.Duration) error {
	switch code {
	case ExternalCodeAPIKeyInvalid, ExternalCodeAPIKeyMissing, ExternalCodeAPIKeyDisabled:
		return domain.NewForbiddenError(operation, message)
	case ExternalCodeRateLimited, ExternalCodeAPIKeyExhausted:
		return domain.NewRateLimitedError(serviceName, retryAfter)
	case ExternalCodeParameterInvalid, ExternalCodeParametersMissing,
		ExternalCodeSourcesTooMany, ExternalCodeSourceDoesNotExist:
		return domain.NewValidationError("", message)
	default:
		return domain.NewUnavailableError(serviceName, message)
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}

	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}

	return time.Duration(secs) * time.Second
}
