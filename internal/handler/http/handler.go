package http

import (
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server

	authLimiter *ipRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		cfg:         cfg,
		authLimiter: newIPRateLimiter(cfg.LoginRateLimit, cfg.LoginBurst),
		logger:      logger,
	}
}
