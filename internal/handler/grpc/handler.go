// Package grpc exposes the standard gRPC health checking protocol for the
// vault server. The vault API itself is served over HTTP only.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// VaultServiceName is the service name reported next to the overall ("")
// status.
const VaultServiceName = "securevault.Vault"

// DefaultProbeInterval is how often the database is pinged.
const DefaultProbeInterval = 10 * time.Second

// Pinger reports whether the backing database is reachable. *store.DB
// satisfies it through the embedded *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It owns a health server whose status follows the database: SERVING while
// pings succeed and NOT_SERVING otherwise.
type Handler struct {
	services *service.Services
	pinger   Pinger
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. A nil pinger leaves the status at
// SERVING for the lifetime of the process.
func NewHandler(services *service.Services, pinger Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		pinger:   pinger,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)

	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Probe pings the database once and updates the reported status.
func (h *Handler) Probe(ctx context.Context) {
	if h.pinger == nil {
		return
	}

	if err := h.pinger.PingContext(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("database ping failed")
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	h.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Watch calls Probe every interval until ctx is done.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	if h.pinger == nil {
		return
	}
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			h.Probe(probeCtx)
			cancel()
		}
	}
}

// Shutdown flips every service to NOT_SERVING so load balancers drain the
// instance before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(VaultServiceName, status)
}
