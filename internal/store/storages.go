// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/secure-vault/internal/logger"

// Storages aggregates every repository the server needs.
type Storages struct {
	UserRepository  UserRepository
	VaultRepository VaultRepository
}

// NewStorages wires all repositories to one database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		VaultRepository: NewVaultRepository(db, log),
	}
}
