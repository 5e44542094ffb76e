package visionopenai

import (
	"net/http"
	"strings"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("VISION_OPENAI")

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"OpenAI API key not provided",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to OpenAI API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing OpenAI API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"OpenAI API rate limit exceeded",
	)

	ErrContentRejected = errorRegistry.Register(
		"CONTENT_REJECTED",
		errx.TypeExternal,
		http.StatusUnprocessableEntity,
		"OpenAI rejected the image content",
	)

	ErrTimeout = errorRegistry.Register(
		"TIMEOUT",
		errx.TypeExternal,
		http.StatusGatewayTimeout,
		"OpenAI API call timed out",
	)

	ErrEmptyResponse = errorRegistry.Register(
		"EMPTY_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"OpenAI returned an empty response",
	)
)

// ParseOpenAIError maps an OpenAI SDK error to an errx.Error
func ParseOpenAIError(err error) *errx.Error {
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
		strings.Contains(errLower, "invalid api key") ||
		strings.Contains(errLower, "incorrect api key"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "content_policy") || strings.Contains(errLower, "content policy"):
		baseErr = ErrContentRejected
	case strings.Contains(errLower, "deadline exceeded") || strings.Contains(errLower, "timeout"):
		baseErr = ErrTimeout
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
