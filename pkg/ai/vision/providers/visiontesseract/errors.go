package visiontesseract

import (
	"net/http"

	"github.com/casedesk/casedesk/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("VISION_TESSERACT")

	ErrNotEnabled = errorRegistry.Register(
		"NOT_ENABLED",
		errx.TypeInternal,
		http.StatusNotImplemented,
		"Tesseract support not compiled in; rebuild with -tags ocr",
	)

	ErrRecognition = errorRegistry.Register(
		"RECOGNITION_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Tesseract failed to recognize text",
	)
)
