// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/service"
)

// humanizeError turns client errors into the line shown in the error
// overlay.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrServerUnavailable):
		return "Server is unavailable, check your network"
	case errors.Is(err, service.ErrWrongPassword):
		return "Invalid email or password"
	case errors.Is(err, service.ErrTwoFactorRequired):
		return "Enter the code from your authenticator app"
	case errors.Is(err, service.ErrInvalidTwoFactorCode):
		return "Invalid two-factor code"
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return "An account with this email already exists"
	case isLocked(err):
		return "Vault is locked, log in again"
	}
	return err.Error()
}

func isLocked(err error) bool {
	return errors.Is(err, client.ErrLocked) || errors.Is(err, crypto.ErrSessionClosed) || errors.Is(err, service.ErrNotLoggedIn)
}
