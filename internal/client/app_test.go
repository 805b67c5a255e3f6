package client

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/mock"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func loginResponse() models.LoginResponse {
	return models.LoginResponse{
		UserID:        1,
		Email:         "alice@example.com",
		KDFSalt:       "c2FsdHNhbHRzYWx0c2FsdA==",
		KDFIterations: crypto.LegacyIterations,
	}
}

func newTestApp(t *testing.T, idle time.Duration) (*App, *mock.MockServerAdapter) {
	t.Helper()

	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	log := logger.Nop()

	app := newApp(serverAdapter, service.NewClientServices(serverAdapter, log), config.ClientWorkers{IdleTimeout: idle}, log)
	app.Start(context.Background())
	t.Cleanup(app.workers.Stop)

	return app, serverAdapter
}

func TestApp_LoginLogout(t *testing.T) {
	app, serverAdapter := newTestApp(t, time.Hour)

	_, err := app.Session()
	assert.ErrorIs(t, err, ErrLocked)

	serverAdapter.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: "alice@example.com", Password: "Tr0ub4dor&3"}).Return(loginResponse(), nil)
	session, err := app.Login(context.Background(), "alice@example.com", "Tr0ub4dor&3", "")
	require.NoError(t, err)

	current, err := app.Session()
	require.NoError(t, err)
	assert.Same(t, session, current)

	serverAdapter.EXPECT().SetToken("")
	app.Logout()

	assert.True(t, session.Closed())
	_, err = app.Session()
	assert.ErrorIs(t, err, ErrLocked)

	// a second logout is a no-op
	app.Logout()
}

func TestApp_LoginFailureKeepsLocked(t *testing.T) {
	app, serverAdapter := newTestApp(t, time.Hour)

	serverAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.LoginResponse{}, adapter.ErrUnauthorized)
	_, err := app.Login(context.Background(), "alice@example.com", "wrong", "")
	require.Error(t, err)

	_, err = app.Session()
	assert.ErrorIs(t, err, ErrLocked)
}

func TestApp_IdleLockClosesSession(t *testing.T) {
	app, serverAdapter := newTestApp(t, 20*time.Millisecond)

	serverAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(loginResponse(), nil)
	session, err := app.Login(context.Background(), "alice@example.com", "Tr0ub4dor&3", "")
	require.NoError(t, err)

	select {
	case <-app.Locked():
	case <-time.After(time.Second):
		t.Fatal("idle lock did not fire")
	}

	assert.True(t, session.Closed())
	_, err = app.Session()
	assert.ErrorIs(t, err, ErrLocked)
}
