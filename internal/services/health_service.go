package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"marketstudy/internal/config"
	"marketstudy/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	paths     *config.Paths
	study     *StudyService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service. study may be nil.
func NewHealthService(version, buildTime string, paths *config.Paths, study *StudyService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		study:     study,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"data":    hs.checkDir(hs.paths.DataDir),
			"reports": hs.checkDir(hs.paths.ReportsDir),
			"study":   hs.checkStudy(),
		},
	}

	for name, s := range status.Services {
		if s.Status == "not_ready" {
			status.Status = "degraded"
			hs.logger.WarnContext(ctx, "health check degraded",
				slog.String("check", name),
				slog.String("message", s.Message),
			)
		}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"app":        config.AppName,
		"version":    hs.version,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"uptime":     time.Since(hs.startTime).Seconds(),
		"start_time": hs.startTime.Format(time.RFC3339),
	}
	if hs.buildTime != "" && hs.buildTime != "unknown" {
		result["build_time"] = hs.buildTime
	}
	info := contracts.GetVersionInfo()
	result["git_commit"] = info.GitCommit
	result["data_format"] = info.DataFormat
	result["api_version"] = info.APIVersion
	return result
}

func (hs *HealthService) checkDir(dir string) ServiceHealth {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		// Created on the first run.
		return ServiceHealth{Status: "pending", Message: fmt.Sprintf("directory not created yet: %s", dir)}
	}
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	return ServiceHealth{Status: "ready"}
}

func (hs *HealthService) checkStudy() ServiceHealth {
	if hs.study == nil {
		return ServiceHealth{Status: "not_ready", Message: "study service not initialized"}
	}
	if hs.study.Running() {
		return ServiceHealth{Status: "ready", Message: "study run in progress"}
	}
	if last, ok := hs.study.LastRun(); ok {
		return ServiceHealth{Status: "ready", Message: fmt.Sprintf("last run %s %s", last.RunID, last.Status)}
	}
	return ServiceHealth{Status: "ready", Message: "no run yet"}
}
