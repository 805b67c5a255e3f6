package store

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts and their two-factor state.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	SetPendingTOTPSecret(ctx context.Context, userID int64, secret string) error
	EnableTwoFactor(ctx context.Context, userID int64, secret string) error
}

// VaultRepository persists vault records. Every method is scoped to one
// owner; records of other users are invisible.
type VaultRepository interface {
	List(ctx context.Context, userID int64) ([]models.VaultRecord, error)
	Create(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	CreateMany(ctx context.Context, userID int64, records []models.VaultRecord) (int, error)
	Update(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error)
	Delete(ctx context.Context, userID, id int64) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
