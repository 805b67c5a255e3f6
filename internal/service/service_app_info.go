package service

import (
	"context"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
)

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports buildInfo. A binary built without linker flags
// falls back to the configured version.
func NewAppInfoService(buildInfo models.AppBuildInfo, cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if !buildInfo.Stamped() {
		if cfg.Version == "" {
			return nil, ErrVersionIsNotSpecified
		}
		buildInfo = buildInfo.WithVersion(cfg.Version)
	}

	return &appInfoService{
		info:   buildInfo,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.VersionResponse {
	return s.info.Response()
}
