package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/agent"
	"github.com/saturnino-fabrica-de-software/vigia/internal/config"
	"github.com/saturnino-fabrica-de-software/vigia/internal/detect"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	interviewFlag := flag.String("interview", "", "Interview UUID to report events to")
	framesDir := flag.String("frames", "", "Directory the capture pipeline writes frames to")
	apiURL := flag.String("api", "http://localhost:3000", "Base URL of the ingest API")
	flag.Parse()

	if *interviewFlag == "" || *framesDir == "" {
		return fmt.Errorf("both -interview and -frames are required")
	}
	interviewID, err := uuid.Parse(*interviewFlag)
	if err != nil {
		return fmt.Errorf("invalid interview id: %w", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Vigia agent",
		slog.String("interview_id", interviewID.String()),
		slog.String("frames", *framesDir),
		slog.String("provider", cfg.VisionProvider),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Vision backends: configured provider plus the degraded fallback
	primary, err := vision.NewVisionProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create vision provider: %w", err)
	}
	fallback := vision.NewFallbackProvider(cfg)

	// Event delivery to the API
	reporter := agent.NewReporter(*apiURL, interviewID, logger)
	reporterCtx, cancelReporter := context.WithCancel(context.Background())
	defer cancelReporter()
	go reporter.Run(reporterCtx)

	// Detection pipeline
	manager := detect.NewManager(detect.Config{
		Interval:            cfg.DetectionInterval,
		RefractoryWindow:    cfg.RefractoryWindow,
		FaceAbsentThreshold: cfg.FaceAbsentThreshold,
		FocusLostThreshold:  cfg.FocusLostThreshold,
	}, primary, fallback, reporter.Emit, logger)

	// A session keeps running even when every vision backend is down; the
	// interview just loses automated detection.
	if err := manager.Initialize(ctx); err != nil {
		if !errors.Is(err, domain.ErrDetectionDisabled) {
			return fmt.Errorf("failed to initialize detection: %w", err)
		}
		logger.Warn("all vision backends unavailable, detection disabled", "error", err)
	} else {
		if err := manager.Start(detect.NewDirSource(*framesDir)); err != nil {
			return fmt.Errorf("failed to start detection: %w", err)
		}
		logger.Info("detection running")
	}

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("shutdown signal received")

	manager.Stop()
	cancelReporter()
	logger.Info("agent stopped")

	return nil
}
