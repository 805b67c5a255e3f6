// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrNoToken):
		return ErrNotLoggedIn

	case errors.Is(err, adapter.ErrTransport):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)

	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidTwoFactorCode:
			return ErrInvalidTwoFactorCode
		case app.MsgTwoFactorNotSetUp:
			return ErrTwoFactorNotSetUp
		default:
			return fmt.Errorf("%w: %s", ErrInvalidDataProvided, msg)
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidEmailPassword:
			return ErrWrongPassword
		case app.MsgTwoFactorRequired:
			return ErrTwoFactorRequired
		case app.MsgInvalidTwoFactorCode:
			return ErrInvalidTwoFactorCode
		default:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrNotFound):
		return ErrRecordNotFound

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgEmailAlreadyExists {
			return ErrEmailAlreadyExists
		}

	case errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrInternalServerError):
		return fmt.Errorf("%w: %s", ErrServerUnavailable, msg)
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
