package services

import (
	"context"
	"runtime"
	"time"
)

// HealthService reports process health for the health endpoints.
type HealthService struct {
	version   string
	buildTime string
	startTime time.Time
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// VersionInfo represents the version response
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
}

// NewHealthService creates a new health service.
func NewHealthService(version, buildTime string) *HealthService {
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startTime: time.Now(),
	}
}

// Health returns the full health snapshot.
func (s *HealthService) Health(ctx context.Context) *HealthStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"go_version":  runtime.Version(),
			"goroutines":  runtime.NumGoroutine(),
			"alloc_bytes": mem.Alloc,
			"num_gc":      mem.NumGC,
			"num_cpu":     runtime.NumCPU(),
		},
	}
}

// Live reports process liveness. The service is stateless, so being able
// to answer is being alive.
func (s *HealthService) Live(ctx context.Context) bool { return true }

// Ready reports readiness to accept uploads.
func (s *HealthService) Ready(ctx context.Context) bool { return true }

// Version returns build information.
func (s *HealthService) Version(ctx context.Context) *VersionInfo {
	return &VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
	}
}
