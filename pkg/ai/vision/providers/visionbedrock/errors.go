package visionbedrock

import (
	"net/http"
	"strings"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("VISION_BEDROCK")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Bedrock",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing AWS credentials for Bedrock",
	)

	ErrAPIThrottled = errorRegistry.Register(
		"API_THROTTLED",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Bedrock request was throttled",
	)

	ErrContentRejected = errorRegistry.Register(
		"CONTENT_REJECTED",
		errx.TypeExternal,
		http.StatusUnprocessableEntity,
		"Bedrock guardrails rejected the content",
	)

	ErrTimeout = errorRegistry.Register(
		"TIMEOUT",
		errx.TypeExternal,
		http.StatusGatewayTimeout,
		"Bedrock call timed out",
	)

	ErrEmptyResponse = errorRegistry.Register(
		"EMPTY_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Bedrock returned an empty response",
	)
)

// ParseBedrockError maps an AWS SDK error to an errx.Error
func ParseBedrockError(err error) *errx.Error {
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
	case strings.Contains(errLower, "accessdenied") || strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "credentials"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "throttl") || strings.Contains(errLower, "too many requests"):
		baseErr = ErrAPIThrottled
	case strings.Contains(errLower, "guardrail") || strings.Contains(errLower, "content filter"):
		baseErr = ErrContentRejected
	case strings.Contains(errLower, "deadline exceeded") || strings.Contains(errLower, "timeout"):
		baseErr = ErrTimeout
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
