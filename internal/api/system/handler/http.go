package systemHandler

import (
	"time"

	"UWellGolang/internal/middleware"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SystemHandler struct {
	log        *logrus.Logger
	middleware middleware.Middleware
	poseClient mediapipe.IClient
	analyzer   posture.IAnalyzer
	utils      utils.IUtils
	startedAt  time.Time
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	poseClient mediapipe.IClient,
	analyzer posture.IAnalyzer,
	utils utils.IUtils,
	startedAt time.Time,
) *SystemHandler {
	return &SystemHandler{
		log:        log,
		middleware: middleware,
		poseClient: poseClient,
		analyzer:   analyzer,
		utils:      utils,
		startedAt:  startedAt,
	}
}

func (h *SystemHandler) Start(srv fiber.Router) {
	srv.Get("/health", h.HealthCheck)
	srv.Get("/test", h.TestDiagnostics)
}
