package analysis

import (
	"UWellGolang/pkg/response"
	"net/http"
)

var (
	ErrNoImage             = response.NewError(http.StatusBadRequest, "no image file provided")
	ErrInvalidFileType     = response.NewError(http.StatusBadRequest, "invalid file type")
	ErrEmptyFile           = response.NewError(http.StatusBadRequest, "empty image file")
	ErrFileTooLarge        = response.NewError(http.StatusBadRequest, "image file too large")
	ErrAnalyzerUnavailable = response.NewError(http.StatusInternalServerError, "pose detection service unavailable")
	ErrInvalidAnalysis     = response.NewError(http.StatusInternalServerError, "pose detection service returned invalid data")
)
