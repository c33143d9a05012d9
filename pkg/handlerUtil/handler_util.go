package handlerUtil

import (
	"UWellGolang/internal/api/analysis"
	"UWellGolang/pkg/log"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle converts a service error into the localized error envelope. The
// language always comes from the request form so error payloads match the
// language the caller asked the analysis in.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	lang := posture.NormalizeLanguage(c.FormValue("lang"))

	var respErr *response.Error
	var debug map[string]interface{}
	if errors.As(err, &respErr) {
		debug = respErr.Data
	}

	if errors.Is(err, analysis.ErrNoImage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No image file provided")
		return c.Status(fiber.StatusBadRequest).JSON(analysis.NewErrorResponse(analysis.CodeNoImage, lang, debug))
	}

	if errors.Is(err, analysis.ErrInvalidFileType) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid file type")
		return c.Status(fiber.StatusBadRequest).JSON(analysis.NewErrorResponse(analysis.CodeInvalidFileType, lang, debug))
	}

	if errors.Is(err, analysis.ErrEmptyFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Empty image file")
		return c.Status(fiber.StatusBadRequest).JSON(analysis.NewErrorResponse(analysis.CodeEmptyFile, lang, debug))
	}

	if errors.Is(err, analysis.ErrFileTooLarge) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Image file too large")
		return c.Status(fiber.StatusBadRequest).JSON(analysis.NewErrorResponse(analysis.CodeFileTooLarge, lang, debug))
	}

	if errors.Is(err, analysis.ErrAnalyzerUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Pose detection service unavailable")
		return c.Status(fiber.StatusInternalServerError).JSON(analysis.NewErrorResponse(analysis.CodeAnalyzerUnavailable, lang, debug))
	}

	if errors.Is(err, analysis.ErrInvalidAnalysis) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Pose detection service returned invalid data")
		return c.Status(fiber.StatusInternalServerError).JSON(analysis.NewErrorResponse(analysis.CodeInvalidAnalysis, lang, debug))
	}

	traceID := log.ErrorWithTraceID(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(analysis.NewErrorResponse(analysis.CodeAnalysisFailed, lang, map[string]interface{}{
		"error":    err.Error(),
		"trace_id": traceID,
	}))
}

// Envelope maps a service error onto its localized wire envelope without
// touching HTTP status codes, for transports such as the live WebSocket.
func Envelope(err error, lang posture.Language) analysis.ErrorResponse {
	var respErr *response.Error
	var debug map[string]interface{}
	if errors.As(err, &respErr) {
		debug = respErr.Data
	}

	switch {
	case errors.Is(err, analysis.ErrNoImage):
		return analysis.NewErrorResponse(analysis.CodeNoImage, lang, debug)
	case errors.Is(err, analysis.ErrInvalidFileType):
		return analysis.NewErrorResponse(analysis.CodeInvalidFileType, lang, debug)
	case errors.Is(err, analysis.ErrEmptyFile):
		return analysis.NewErrorResponse(analysis.CodeEmptyFile, lang, debug)
	case errors.Is(err, analysis.ErrFileTooLarge):
		return analysis.NewErrorResponse(analysis.CodeFileTooLarge, lang, debug)
	case errors.Is(err, analysis.ErrAnalyzerUnavailable):
		return analysis.NewErrorResponse(analysis.CodeAnalyzerUnavailable, lang, debug)
	case errors.Is(err, analysis.ErrInvalidAnalysis):
		return analysis.NewErrorResponse(analysis.CodeInvalidAnalysis, lang, debug)
	default:
		return analysis.NewErrorResponse(analysis.CodeAnalysisFailed, lang, map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	lang := posture.NormalizeLanguage(c.FormValue("lang"))
	return c.Status(fiber.StatusBadRequest).JSON(analysis.NewErrorResponse(analysis.CodeValidationError, lang, map[string]interface{}{
		"fields": err.Error(),
	}))
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	lang := posture.NormalizeLanguage(c.FormValue("lang"))
	return c.Status(fiber.StatusRequestTimeout).JSON(analysis.NewErrorResponse(analysis.CodeRequestTimeout, lang, nil))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
