package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		build   models.AppBuildInfo
		cfg     config.App
		want    models.VersionResponse
		wantErr error
	}{
		{
			name:  "build info wins",
			build: models.NewAppBuildInfo("1.2.0", "2026-10-01", "abc123"),
			cfg:   config.App{Version: "dev"},
			want:  models.VersionResponse{Version: "1.2.0", Date: "2026-10-01", Commit: "abc123"},
		},
		{
			name:  "falls back to config",
			build: models.NewAppBuildInfo("N/A", "N/A", "N/A"),
			cfg:   config.App{Version: "dev"},
			want:  models.VersionResponse{Version: "dev", Date: "N/A", Commit: "N/A"},
		},
		{
			name:    "no version anywhere",
			build:   models.NewAppBuildInfo("", "", ""),
			wantErr: ErrVersionIsNotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.build, tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.GetAppVersion(context.Background()))
		})
	}
}
