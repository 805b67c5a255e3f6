// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's transport to the secure-vault server.
//
// [ServerAdapter] hides the REST API behind typed calls. Non-2xx responses
// are mapped to the sentinel errors of errors.go, carrying the server's
// message, so callers can use [errors.Is] without knowing HTTP.
package adapter

import (
	"context"

	"github.com/MKhiriev/secure-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the secure-vault server. Vault calls need a bearer
// token, which Login stores in the adapter.
type ServerAdapter interface {
	// SetToken replaces the bearer token used by authenticated calls.
	SetToken(token string)

	// Token returns the current bearer token or "".
	Token() string

	Signup(ctx context.Context, req models.SignupRequest) error

	// Login returns the account's key derivation parameters and stores the
	// bearer token from the Authorization response header.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	ListVault(ctx context.Context) ([]models.VaultRecord, error)
	CreateVaultItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	UpdateVaultItem(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error)
	DeleteVaultItem(ctx context.Context, id int64) error
	ImportVault(ctx context.Context, records []models.VaultRecord) (models.ImportResponse, error)

	SetupTwoFactor(ctx context.Context) (models.TwoFactorSetupResponse, error)
	VerifyTwoFactor(ctx context.Context, code string) error

	Version(ctx context.Context) (models.VersionResponse, error)
}
