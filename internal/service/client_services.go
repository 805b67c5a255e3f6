package service

import (
	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
)

// ClientServices aggregates the services of the client binary.
type ClientServices struct {
	AuthService  ClientAuthService
	VaultService ClientVaultService
}

func NewClientServices(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	codec := crypto.NewFieldCodec(logger)

	return &ClientServices{
		AuthService:  NewClientAuthService(serverAdapter, logger),
		VaultService: NewClientVaultService(serverAdapter, codec, logger),
	}
}
