package systemHandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"UWellGolang/internal/api/system"
	"UWellGolang/internal/middleware"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPoseClient struct {
	err error
}

func (s *stubPoseClient) DetectPose(ctx context.Context, image []byte, filename string) (*mediapipe.DetectionResult, error) {
	return nil, s.err
}

func (s *stubPoseClient) HealthCheck(ctx context.Context) error { return s.err }

func (s *stubPoseClient) BaseURL() string { return "http://detector.local" }

func newTestApp(t *testing.T, pose mediapipe.IClient, strategy string) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	analyzer, err := posture.New(posture.Config{ForwardHeadStrategy: strategy})
	require.NoError(t, err)

	handler := New(logger, middleware.New(logger), pose, analyzer, utils.New(), time.Now().Add(-90*time.Second))

	app := fiber.New()
	handler.Start(app.Group("/api/v1"))

	return app
}

func getJSON(t *testing.T, app *fiber.App, path string, out interface{}) int {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))

	return resp.StatusCode
}

func TestHealthCheck_ReportsAvailableDetector(t *testing.T) {
	app := newTestApp(t, &stubPoseClient{}, "")

	var body system.HealthResponse
	status := getJSON(t, app, "/api/v1/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "posture-analysis", body.Service)
	assert.Equal(t, "available", body.DetectorStatus)
	assert.Equal(t, "available", body.AnalyzerStatus)
	assert.GreaterOrEqual(t, body.Uptime, 90.0)
	assert.NotEmpty(t, body.Timestamp)
}

func TestHealthCheck_ReportsUnreachableDetector(t *testing.T) {
	app := newTestApp(t, &stubPoseClient{err: errors.New("connection refused")}, "")

	var body system.HealthResponse
	status := getJSON(t, app, "/api/v1/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "unreachable", body.DetectorStatus)
}

func TestTestDiagnostics_ReportsConfiguredStrategy(t *testing.T) {
	app := newTestApp(t, &stubPoseClient{}, posture.StrategyTorsoAngle)

	var body system.TestResponse
	getJSON(t, app, "/api/v1/test", &body)

	assert.Equal(t, "torso_angle", body.Strategy)
}

func TestTestDiagnostics_AllDependenciesHealthy(t *testing.T) {
	app := newTestApp(t, &stubPoseClient{}, "")

	var body system.TestResponse
	status := getJSON(t, app, "/api/v1/test", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Test endpoint working!", body.Message)
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "eyeline", body.Strategy)
	assert.Contains(t, body.Endpoints, "/api/v1/posture/analyze")
	assert.Contains(t, body.Endpoints, "/api/v1/posture/live")

	assert.Equal(t, "OK - http://detector.local", body.Dependencies["pose_detector"])
	assert.Equal(t, "OK - png 2x2", body.Dependencies["image_codec"])
	assert.Equal(t, "OK - returned excellent (score 100)", body.Dependencies["analyzer"])
}

func TestTestDiagnostics_ReportsDetectorFailure(t *testing.T) {
	app := newTestApp(t, &stubPoseClient{err: errors.New("dial tcp: connection refused")}, "")

	var body system.TestResponse
	getJSON(t, app, "/api/v1/test", &body)

	assert.Equal(t, "FAILED: dial tcp: connection refused", body.Dependencies["pose_detector"])
	assert.Equal(t, "OK - png 2x2", body.Dependencies["image_codec"])
}
