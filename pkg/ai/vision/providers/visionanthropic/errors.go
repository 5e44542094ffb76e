package visionanthropic

import (
	"net/http"
	"strings"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("VISION_ANTHROPIC")

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Anthropic API key not provided",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Anthropic API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing Anthropic API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Anthropic API rate limit exceeded",
	)

	ErrContentRejected = errorRegistry.Register(
		"CONTENT_REJECTED",
		errx.TypeExternal,
		http.StatusUnprocessableEntity,
		"Anthropic rejected the image content",
	)

	ErrTimeout = errorRegistry.Register(
		"TIMEOUT",
		errx.TypeExternal,
		http.StatusGatewayTimeout,
		"Anthropic API call timed out",
	)

	ErrEmptyResponse = errorRegistry.Register(
		"EMPTY_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Anthropic returned an empty response",
	)
)

// ParseAnthropicError maps an Anthropic SDK error to an errx.Error
func ParseAnthropicError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid x-api-key") ||
		strings.Contains(errLower, "authentication"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit") ||
		strings.Contains(errLower, "overloaded"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "content") && strings.Contains(errLower, "policy"):
		baseErr = ErrContentRejected
	case strings.Contains(errLower, "deadline exceeded") || strings.Contains(errLower, "timeout"):
		baseErr = ErrTimeout
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
