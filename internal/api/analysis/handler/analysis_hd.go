package analysisHandler

import (
	"encoding/json"
	"mime/multipart"
	"time"

	"UWellGolang/internal/api/analysis"
	contextPkg "UWellGolang/pkg/context"
	"UWellGolang/pkg/handlerUtil"
	"UWellGolang/pkg/log"
	"UWellGolang/pkg/posture"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

func (h *AnalysisHandler) AnalyzePosture(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing posture analysis request")

	file, err := ctx.FormFile("image")
	if err != nil {
		file = nil
	}

	req := analysis.AnalyzeRequest{
		Lang:      ctx.FormValue("lang"),
		SessionID: sessionIDFor(ctx, file),
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	lang := posture.NormalizeLanguage(req.Lang)

	if file != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")
	}

	result, err := h.analysisService.AnalyzeUpload(c, file, lang, req.SessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_posture")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":   requestID,
			"path":         ctx.Path(),
			"posture_type": result.Category,
			"score":        result.Score,
		}).Info("Posture analysis successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

// sessionIDFor resolves the session identifier the way clients send it:
// snake_case field first, then the camelCase one, then the upload filename.
func sessionIDFor(ctx *fiber.Ctx, file *multipart.FileHeader) string {
	if v := ctx.FormValue("session_id"); v != "" {
		return v
	}
	if v := ctx.FormValue("sessionId"); v != "" {
		return v
	}
	if file != nil && file.Filename != "" {
		return file.Filename
	}
	return "anonymous"
}

func (h *AnalysisHandler) handleLiveWebSocket(c *websocket.Conn) {
	connID, err := h.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		connID = "unknown"
	}

	lang := posture.NormalizeLanguage(c.Query("lang"))
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = connID
	}

	h.log.WithFields(log.Fields{
		"connection_id": connID,
		"lang":          string(lang),
	}).Info("Live posture WebSocket client connected")
	defer h.log.WithFields(log.Fields{
		"connection_id": connID,
	}).Info("Live posture WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Live posture WebSocket error: %v", err)
			} else {
				h.log.Info("Live posture WebSocket connection closed")
			}
			break
		}

		var reply interface{}
		var result *analysis.AnalysisResponse
		var analyzeErr error
		msgLang := lang

		switch messageType {
		case websocket.TextMessage:
			var frame analysis.LiveFrameRequest
			if err := json.Unmarshal(message, &frame); err != nil {
				h.log.WithFields(log.Fields{
					"connection_id": connID,
					"error":         err.Error(),
				}).Warn("Malformed live frame payload")
				reply = analysis.NewErrorResponse(analysis.CodeValidationError, lang, map[string]interface{}{
					"error": err.Error(),
				})
			} else {
				if frame.Lang != "" {
					msgLang = posture.NormalizeLanguage(frame.Lang)
				}
				session := sessionID
				if frame.SessionID != "" {
					session = frame.SessionID
				}
				result, analyzeErr = h.analysisService.AnalyzeEncodedFrame(frame.Image, msgLang, session)
			}
		case websocket.BinaryMessage:
			result, analyzeErr = h.analysisService.AnalyzeFrame(message, lang, sessionID)
		default:
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		if analyzeErr != nil {
			h.log.WithFields(log.Fields{
				"connection_id": connID,
				"error":         analyzeErr.Error(),
			}).Error("Error processing posture frame")
			reply = handlerUtil.Envelope(analyzeErr, msgLang)
		}
		if reply == nil {
			reply = result
		}

		if err := h.writeLive(c, reply); err != nil {
			h.log.Errorf("Error writing live response: %v", err)
			break
		}
	}
}

// writeLive sends one JSON payload under a write deadline so a stalled
// client cannot wedge the read loop.
func (h *AnalysisHandler) writeLive(c *websocket.Conn, payload interface{}) error {
	if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return err
	}
	if err := c.WriteJSON(payload); err != nil {
		return err
	}
	return c.SetWriteDeadline(time.Time{})
}
