package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/store"
	"github.com/MKhiriev/secure-vault/models"
)

type vaultService struct {
	vaultRepository store.VaultRepository

	logger *logger.Logger
}

// NewVaultService returns a VaultService backed by vaultRepository.
// It stores what it is given; input checks live in the validation wrapper.
func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		logger:          logger,
	}
}

func (v *vaultService) List(ctx context.Context, userID int64) ([]models.VaultRecord, error) {
	return v.vaultRepository.List(ctx, userID)
}

func (v *vaultService) Create(ctx context.Context, userID int64, record models.VaultRecord) (models.VaultRecord, error) {
	record.ID = 0
	record.UserID = userID
	record.CreatedAt, record.UpdatedAt = nil, nil

	return v.vaultRepository.Create(ctx, record)
}

func (v *vaultService) Update(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error) {
	return v.vaultRepository.Update(ctx, update)
}

func (v *vaultService) Delete(ctx context.Context, userID, id int64) error {
	return v.vaultRepository.Delete(ctx, userID, id)
}

func (v *vaultService) Import(ctx context.Context, userID int64, records []models.VaultRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	reparented := make([]models.VaultRecord, len(records))
	for i, rec := range records {
		rec.ID = 0
		rec.UserID = userID
		rec.CreatedAt, rec.UpdatedAt = nil, nil
		reparented[i] = rec
	}

	count, err := v.vaultRepository.CreateMany(ctx, userID, reparented)
	if err != nil {
		return 0, fmt.Errorf("error importing vault items: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Int("count", count).Msg("vault items imported")
	return count, nil
}
