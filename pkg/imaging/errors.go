package imaging

import (
	"net/http"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("IMAGING")

	ErrUnsupportedFormat = errorRegistry.Register(
		"UNSUPPORTED_FORMAT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Unsupported document format",
	)

	ErrDecodeFailed = errorRegistry.Register(
		"DECODE_FAILED",
		errx.TypeValidation,
		http.StatusUnprocessableEntity,
		"Failed to decode image data",
	)

	ErrRasterizeFailed = errorRegistry.Register(
		"RASTERIZE_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to rasterize PDF pages",
	)

	ErrReadFailed = errorRegistry.Register(
		"READ_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to read document file",
	)
)
