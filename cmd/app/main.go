package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"UWellGolang/internal/config"
	"UWellGolang/pkg/log"
	"UWellGolang/pkg/mediapipe"
	"UWellGolang/pkg/posture"
	"github.com/joho/godotenv"
	"golang.org/x/net/context"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	analyzer, err := posture.New(posture.Config{
		ForwardHeadStrategy: os.Getenv("FORWARD_HEAD_STRATEGY"),
	})
	if err != nil {
		logger.Fatalf("Error creating posture analyzer: %v", err)
	}

	poseServiceURL := os.Getenv("POSE_SERVICE_URL")
	if poseServiceURL == "" {
		poseServiceURL = "http://localhost:8000"
	}

	poseClient, err := mediapipe.New(poseServiceURL, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		logger.Fatalf("Error creating pose detection client: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := poseClient.HealthCheck(pingCtx); err != nil {
		if os.Getenv("POSE_SERVICE_STRICT") == "true" {
			cancel()
			logger.Fatalf("Pose detection service unreachable: %v", err)
		}
		logger.Warnf("Pose detection service unreachable at startup: %v", err)
	}
	cancel()

	var liveClient mediapipe.ILiveClient
	if wsURL := os.Getenv("POSE_SERVICE_WS_URL"); wsURL != "" {
		liveClient = mediapipe.NewLiveClient(wsURL)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithUtils(),
		config.WithPoseClient(poseClient),
		config.WithLiveClient(liveClient),
		config.WithAnalyzer(analyzer),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Infof("Server started with %s forward head strategy", analyzer.Strategy())

	<-sigChan
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
