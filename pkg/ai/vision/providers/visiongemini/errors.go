package visiongemini

import (
	"net/http"
	"strings"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("VISION_GEMINI")

	ErrClientInit = errorRegistry.Register(
		"CLIENT_INIT_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to create Gemini client",
	)

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Gemini API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing Gemini API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Gemini API rate limit exceeded",
	)

	ErrContentRejected = errorRegistry.Register(
		"CONTENT_REJECTED",
		errx.TypeExternal,
		http.StatusUnprocessableEntity,
		"Gemini blocked the image content",
	)

	ErrTimeout = errorRegistry.Register(
		"TIMEOUT",
		errx.TypeExternal,
		http.StatusGatewayTimeout,
		"Gemini API call timed out",
	)

	ErrEmptyResponse = errorRegistry.Register(
		"EMPTY_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Gemini returned an empty response",
	)
)

// ParseGeminiError maps a Gemini SDK error to an errx.Error
func ParseGeminiError(err error) *errx.Error {
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
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "unauthenticated") ||
		strings.Contains(errLower, "permission"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "quota") || strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "resource exhausted"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "safety") || strings.Contains(errLower, "blocked"):
		baseErr = ErrContentRejected
	case strings.Contains(errLower, "deadline exceeded") || strings.Contains(errLower, "timeout"):
		baseErr = ErrTimeout
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
