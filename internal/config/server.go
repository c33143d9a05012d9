package config

import (
	analysisHandler "UWellGolang/internal/api/analysis/handler"
	analysisService "UWellGolang/internal/api/analysis/service"
	systemHandler "UWellGolang/internal/api/system/handler"
	"UWellGolang/internal/middleware"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"UWellGolang/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	log        *logrus.Logger
	middleware middleware.Middleware
	validator  *validator.Validate
	utils      utils.IUtils
	poseClient mediapipe.IClient
	liveClient mediapipe.ILiveClient
	analyzer   posture.IAnalyzer
	handlers   []handler
	startedAt  time.Time
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{startedAt: time.Now()}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.poseClient == nil {
		return nil, fmt.Errorf("pose detection client is required")
	}
	if server.analyzer == nil {
		return nil, fmt.Errorf("posture analyzer is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithPoseClient(client mediapipe.IClient) ServerOption {
	return func(s *Server) error {
		s.poseClient = client
		return nil
	}
}

// WithLiveClient attaches the persistent detector socket. The server runs
// without it, live frames then go over plain HTTP detection.
func WithLiveClient(client mediapipe.ILiveClient) ServerOption {
	return func(s *Server) error {
		s.liveClient = client
		return nil
	}
}

func WithAnalyzer(analyzer posture.IAnalyzer) ServerOption {
	return func(s *Server) error {
		s.analyzer = analyzer
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Analysis Domain
	analysisServices := analysisService.NewAnalysisService(s.poseClient, s.liveClient, s.analyzer, s.utils)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.utils)

	// System Domain
	systemHandlers := systemHandler.New(s.log, s.middleware, s.poseClient, s.analyzer, s.utils, s.startedAt)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, analysisHandlers, systemHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	s.engine.Use(s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8787"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.liveClient != nil {
			s.liveClient.Close()
		}
		return err
	}

	return nil
}

func (s *Server) Shutdown() error {
	if s.liveClient != nil {
		s.liveClient.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":   "U-Well Posture Analysis API is running!",
			"status":    "healthy",
			"timestamp": time.Now().Format("2006-01-02 15:04:05"),
			"endpoints": []string{
				"/api/v1/health",
				"/api/v1/test",
				"/api/v1/posture/analyze",
				"/api/v1/posture/live",
			},
		})
	})
}
