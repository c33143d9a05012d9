package systemHandler

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"time"

	"UWellGolang/internal/api/analysis"
	"UWellGolang/internal/api/system"
	contextPkg "UWellGolang/pkg/context"
	"UWellGolang/pkg/log"
	"UWellGolang/pkg/posture"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const timestampLayout = "2006-01-02 15:04:05"

// cannedPose is an upright subject that must score excellent under every
// forward head strategy, used to verify the analyzer end to end.
var cannedPose = posture.LandmarkSet{
	posture.LandmarkNose:          {Name: posture.LandmarkNose, X: 200, Y: 150, Visibility: 0.99},
	posture.LandmarkLeftEye:       {Name: posture.LandmarkLeftEye, X: 180, Y: 140, Visibility: 0.99},
	posture.LandmarkRightEye:      {Name: posture.LandmarkRightEye, X: 220, Y: 140, Visibility: 0.99},
	posture.LandmarkLeftShoulder:  {Name: posture.LandmarkLeftShoulder, X: 100, Y: 200, Visibility: 0.99},
	posture.LandmarkRightShoulder: {Name: posture.LandmarkRightShoulder, X: 300, Y: 200, Visibility: 0.99},
	posture.LandmarkLeftHip:       {Name: posture.LandmarkLeftHip, X: 100, Y: 500, Visibility: 0.99},
	posture.LandmarkRightHip:      {Name: posture.LandmarkRightHip, X: 300, Y: 500, Visibility: 0.99},
}

func (h *SystemHandler) HealthCheck(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	// Short ping budget so a hung detector cannot stall liveness probes.
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 1500*time.Millisecond)
	defer cancel()

	detectorStatus := "available"
	if err := h.poseClient.HealthCheck(c); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Pose detector health check failed")
		detectorStatus = "unreachable"
	}

	// The analyzer is constructed fail fast at startup, so a serving
	// process always has a working engine.
	return ctx.JSON(system.HealthResponse{
		Status:         "ok",
		Service:        "posture-analysis",
		Uptime:         math.Round(time.Since(h.startedAt).Seconds()*10) / 10,
		Timestamp:      time.Now().Format(timestampLayout),
		DetectorStatus: detectorStatus,
		AnalyzerStatus: "available",
	})
}

func (h *SystemHandler) TestDiagnostics(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Running diagnostics")

	deps := map[string]string{}

	if err := h.poseClient.HealthCheck(c); err != nil {
		deps["pose_detector"] = fmt.Sprintf("FAILED: %v", err)
	} else {
		deps["pose_detector"] = fmt.Sprintf("OK - %s", h.poseClient.BaseURL())
	}

	deps["image_codec"] = h.codecCheck()
	deps["analyzer"] = h.analyzerCheck()

	return ctx.JSON(system.TestResponse{
		Message:  "Test endpoint working!",
		Version:  analysis.APIVersion,
		Strategy: h.analyzer.Strategy(),
		Endpoints: []string{
			"/",
			"/api/v1/health",
			"/api/v1/test",
			"/api/v1/posture/analyze",
			"/api/v1/posture/live",
		},
		Dependencies: deps,
	})
}

// codecCheck round-trips a tiny PNG through the decoder used on uploads.
func (h *SystemHandler) codecCheck() string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		return fmt.Sprintf("FAILED: %v", err)
	}

	width, height, err := h.utils.DecodeImageBounds(buf.Bytes())
	if err != nil {
		return fmt.Sprintf("FAILED: %v", err)
	}
	return fmt.Sprintf("OK - png %dx%d", width, height)
}

func (h *SystemHandler) analyzerCheck() string {
	verdict := h.analyzer.Evaluate(posture.Input{
		Landmarks: cannedPose,
		Language:  posture.LangEnglish,
	})
	return fmt.Sprintf("OK - returned %s (score %d)", verdict.Category, verdict.Score)
}
