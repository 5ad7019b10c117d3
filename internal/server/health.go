package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service name reported for the upload pipeline.
const ServiceName = "resumes.v1.Uploader"

// NewGRPCServer returns a gRPC server exposing only the standard health
// service. Both the overall and the uploader status start as NOT_SERVING.
func NewGRPCServer() (*grpc.Server, *health.Server) {
	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return gs, hs
}

// ReportDestination flips health to SERVING once probe succeeds.
func ReportDestination(ctx context.Context, hs *health.Server, probe func(context.Context) error, logger *slog.Logger) error {
	if err := probe(ctx); err != nil {
		logger.Warn("grpc.health.not_serving", "error", err)
		hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
		hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	logger.Info("grpc.health.serving")
	return nil
}

// WatchDestination probes until the destination answers, then reports SERVING
// and returns. Health stays NOT_SERVING between failed attempts. It returns
// ctx.Err() if ctx ends first.
func WatchDestination(ctx context.Context, hs *health.Server, probe func(context.Context) error, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for attempt := 1; ; attempt++ {
		if ReportDestination(ctx, hs, probe, logger) == nil {
			return nil
		}
		logger.Info("grpc.health.retry", "attempt", attempt, "next_in", interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
