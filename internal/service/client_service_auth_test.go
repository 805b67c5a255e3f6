package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/mock"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientAuthSvc(t *testing.T) (ClientAuthService, *mock.MockServerAdapter) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
	return NewClientAuthService(mockAdapter, logger.Nop()), mockAdapter
}

func serverErr(sentinel error, msg string) error {
	return fmt.Errorf("%w: %s", sentinel, msg)
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestClientAuthService_Signup(t *testing.T) {
	svc, mockAdapter := newTestClientAuthSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Signup(ctx, models.SignupRequest{Email: "alice@example.com", Password: "correct horse"}).
		Return(nil)

	require.NoError(t, svc.Signup(ctx, "alice@example.com", "correct horse"))
}

func TestClientAuthService_Signup_RejectedLocally(t *testing.T) {
	svc, _ := newTestClientAuthSvc(t)

	err := svc.Signup(context.Background(), "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientAuthService_Signup_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"email taken", serverErr(adapter.ErrConflict, app.MsgEmailAlreadyExists), ErrEmailAlreadyExists},
		{"server down", fmt.Errorf("%w: dial tcp", adapter.ErrTransport), ErrServerUnavailable},
		{"unexpected", serverErr(adapter.ErrUnexpectedStatus, "teapot"), ErrSignupOnServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockAdapter := newTestClientAuthSvc(t)
			mockAdapter.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(tt.err)

			err := svc.Signup(context.Background(), "alice@example.com", "correct horse")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientAuthService_Login_DerivesKey(t *testing.T) {
	svc, mockAdapter := newTestClientAuthSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().
		Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "correct horse", TOTP: "123456"}).
		Return(models.LoginResponse{UserID: 7, Email: "alice@example.com", KDFSalt: "c2FsdHNhbHRzYWx0c2FsdA==", KDFIterations: 1000}, nil)

	session, err := svc.Login(ctx, "alice@example.com", "correct horse", "123456")
	require.NoError(t, err)
	t.Cleanup(session.Destroy)

	assert.Equal(t, int64(7), session.UserID())
	assert.Equal(t, "alice@example.com", session.Email())

	want := crypto.NewKeyDeriver(1000).DeriveKey("correct horse", "c2FsdHNhbHRzYWx0c2FsdA==")
	require.NoError(t, session.WithKey(func(key crypto.SessionKey) error {
		assert.True(t, want.Equal(key))
		return nil
	}))

	wantLegacy := crypto.LegacyKeys("correct horse", "alice@example.com")
	require.NoError(t, session.WithLegacyKeys(func(_ crypto.SessionKey, legacy []crypto.SessionKey) error {
		require.Len(t, legacy, len(wantLegacy))
		for i := range legacy {
			assert.True(t, wantLegacy[i].Equal(legacy[i]), "legacy key %d", i)
		}
		return nil
	}))
}

func TestClientAuthService_Login_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"wrong password", serverErr(adapter.ErrUnauthorized, app.MsgInvalidEmailPassword), ErrWrongPassword},
		{"two factor required", serverErr(adapter.ErrUnauthorized, app.MsgTwoFactorRequired), ErrTwoFactorRequired},
		{"bad two factor code", serverErr(adapter.ErrUnauthorized, app.MsgInvalidTwoFactorCode), ErrInvalidTwoFactorCode},
		{"rate limited", serverErr(adapter.ErrTooManyRequests, app.MsgTooManyRequests), ErrLoginOnServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockAdapter := newTestClientAuthSvc(t)
			mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.LoginResponse{}, tt.err)

			session, err := svc.Login(context.Background(), "alice@example.com", "correct horse", "")
			assert.Nil(t, session)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientAuthService_Login_InvalidKDFParams(t *testing.T) {
	tests := []models.LoginResponse{
		{UserID: 7, KDFSalt: "", KDFIterations: 600000},
		{UserID: 7, KDFSalt: "c2FsdA==", KDFIterations: 1},
	}

	for _, resp := range tests {
		svc, mockAdapter := newTestClientAuthSvc(t)
		gomock.InOrder(
			mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(resp, nil),
			mockAdapter.EXPECT().SetToken(""),
		)

		session, err := svc.Login(context.Background(), "alice@example.com", "correct horse", "")
		assert.Nil(t, session)
		assert.ErrorIs(t, err, ErrInvalidKDFParams)
	}
}

func TestClientAuthService_Logout(t *testing.T) {
	svc, mockAdapter := newTestClientAuthSvc(t)

	session, err := crypto.NewSession(1, "alice@example.com", crypto.NewKeyDeriver(1000).DeriveKey("pw", "salt"))
	require.NoError(t, err)

	mockAdapter.EXPECT().SetToken("").Times(2)

	svc.Logout(session)
	assert.True(t, session.Closed())

	svc.Logout(nil)
}

// ── Two-factor ───────────────────────────────────────────────────────────────

func TestClientAuthService_TwoFactor(t *testing.T) {
	svc, mockAdapter := newTestClientAuthSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().SetupTwoFactor(ctx).Return(models.TwoFactorSetupResponse{Secret: "JBSWY3DPEHPK3PXP"}, nil)
	mockAdapter.EXPECT().VerifyTwoFactor(ctx, "000000").Return(serverErr(adapter.ErrBadRequest, app.MsgInvalidTwoFactorCode))
	mockAdapter.EXPECT().VerifyTwoFactor(ctx, "123456").Return(nil)

	setup, err := svc.SetupTwoFactor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", setup.Secret)

	assert.ErrorIs(t, svc.VerifyTwoFactor(ctx, "000000"), ErrInvalidTwoFactorCode)
	assert.NoError(t, svc.VerifyTwoFactor(ctx, "123456"))
}

func TestClientAuthService_TwoFactor_NotLoggedIn(t *testing.T) {
	svc, mockAdapter := newTestClientAuthSvc(t)

	mockAdapter.EXPECT().SetupTwoFactor(gomock.Any()).Return(models.TwoFactorSetupResponse{}, adapter.ErrNoToken)

	_, err := svc.SetupTwoFactor(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
