package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/stretchr/testify/assert"
)

func TestMapAdapterError(t *testing.T) {
	other := errors.New("something else")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no token", adapter.ErrNoToken, ErrNotLoggedIn},
		{"transport", fmt.Errorf("%w: connection refused", adapter.ErrTransport), ErrServerUnavailable},
		{"invalid data", serverErr(adapter.ErrBadRequest, app.MsgInvalidDataProvided), ErrInvalidDataProvided},
		{"bad 2fa code on verify", serverErr(adapter.ErrBadRequest, app.MsgInvalidTwoFactorCode), ErrInvalidTwoFactorCode},
		{"2fa not set up", serverErr(adapter.ErrBadRequest, app.MsgTwoFactorNotSetUp), ErrTwoFactorNotSetUp},
		{"wrong password", serverErr(adapter.ErrUnauthorized, app.MsgInvalidEmailPassword), ErrWrongPassword},
		{"2fa required", serverErr(adapter.ErrUnauthorized, app.MsgTwoFactorRequired), ErrTwoFactorRequired},
		{"expired token", serverErr(adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid), ErrTokenIsExpiredOrInvalid},
		{"not found", serverErr(adapter.ErrNotFound, app.MsgItemNotFound), ErrRecordNotFound},
		{"email taken", serverErr(adapter.ErrConflict, app.MsgEmailAlreadyExists), ErrEmailAlreadyExists},
		{"internal", serverErr(adapter.ErrInternalServerError, app.MsgInternalServerError), ErrServerUnavailable},
		{"rate limited passes through", serverErr(adapter.ErrTooManyRequests, app.MsgTooManyRequests), adapter.ErrTooManyRequests},
		{"unknown passes through", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "item not found", extractBody(serverErr(adapter.ErrNotFound, "item not found")))
	assert.Equal(t, "plain", extractBody(errors.New("plain")))
}
