package service

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

// AuthService registers accounts, checks credentials and second factors and
// issues the bearer tokens of the API.
type AuthService interface {
	// Signup creates an account with a bcrypt password hash and a fresh
	// random KDF salt.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)

	// Login returns the account for a correct email, password and, when
	// two-factor authentication is on, TOTP code.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// SetupTwoFactor issues a pending TOTP secret. Two-factor stays off
	// until VerifyTwoFactor confirms a code generated from it.
	SetupTwoFactor(ctx context.Context, userID int64) (models.TwoFactorSetupResponse, error)
	VerifyTwoFactor(ctx context.Context, userID int64, code string) error
}

// VaultService stores opaque vault records on behalf of their owner. It
// never decrypts anything.
type VaultService interface {
	List(ctx context.Context, userID int64) ([]models.VaultRecord, error)
	Create(ctx context.Context, userID int64, record models.VaultRecord) (models.VaultRecord, error)
	Update(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error)
	Delete(ctx context.Context, userID, id int64) error

	// Import re-parents records onto userID and stores them in one batch.
	// Ids and timestamps of the input are ignored.
	Import(ctx context.Context, userID int64, records []models.VaultRecord) (int, error)
}

// VaultServiceWrapper decorates a VaultService, for example with input
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
