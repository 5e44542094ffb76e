package visionredis

import (
	"net/http"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	redisErrors = errx.NewRegistry("VISION_REDIS")

	ErrGet = redisErrors.Register(
		"GET_FAILED",
		errx.TypeExternal,
		http.StatusInternalServerError,
		"Failed to read cached result from Redis",
	)

	ErrSet = redisErrors.Register(
		"SET_FAILED",
		errx.TypeExternal,
		http.StatusInternalServerError,
		"Failed to write cached result to Redis",
	)
)
