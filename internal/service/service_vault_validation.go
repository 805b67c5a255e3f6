package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/validators"
	"github.com/MKhiriev/secure-vault/models"
)

// VaultValidationService rejects malformed input before it reaches the
// wrapped VaultService. Validation errors wrap ErrInvalidDataProvided.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultRecordValidator(),
	}
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

func (v *VaultValidationService) List(ctx context.Context, userID int64) ([]models.VaultRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.List(ctx, userID)
}

func (v *VaultValidationService) Create(ctx context.Context, userID int64, record models.VaultRecord) (models.VaultRecord, error) {
	record.UserID = userID
	if err := v.validator.Validate(ctx, record); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, userID, record)
}

func (v *VaultValidationService) Update(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Update(ctx, update)
}

func (v *VaultValidationService) Delete(ctx context.Context, userID, id int64) error {
	err := v.validator.Validate(ctx, models.VaultRecord{ID: id, UserID: userID}, validators.FieldID, validators.FieldUserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Delete(ctx, userID, id)
}

func (v *VaultValidationService) Import(ctx context.Context, userID int64, records []models.VaultRecord) (int, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, records); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Import(ctx, userID, records)
}
