package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/internal/workers"
)

// ErrLocked is returned by Session when nobody is logged in or the idle
// lock has destroyed the session.
var ErrLocked = errors.New("vault is locked, log in again")

// App is one client process: a server connection, at most one open session
// and the idle lock that closes it.
type App struct {
	Adapter  adapter.ServerAdapter
	Services *service.ClientServices

	idleLock *workers.IdleLock
	workers  *workers.Workers

	mu      sync.Mutex
	session *crypto.Session

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating server adapter: %w", err)
	}

	return newApp(serverAdapter, service.NewClientServices(serverAdapter, logger), cfg.Workers, logger), nil
}

func newApp(serverAdapter adapter.ServerAdapter, services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) *App {
	idleLock := workers.NewIdleLock(cfg.IdleTimeout, logger)

	return &App{
		Adapter:  serverAdapter,
		Services: services,
		idleLock: idleLock,
		workers:  workers.NewWorkers(idleLock),
		logger:   logger,
	}
}

// Start launches the background workers.
func (a *App) Start(ctx context.Context) {
	a.workers.Start(ctx)
}

// Close logs out and stops the background workers.
func (a *App) Close() {
	a.Logout()
	a.workers.Stop()
}

// Login opens a session and arms the idle lock with it. A previous session
// is destroyed first.
func (a *App) Login(ctx context.Context, email, password, totp string) (*crypto.Session, error) {
	a.Logout()

	session, err := a.Services.AuthService.Login(ctx, email, password, totp)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	a.idleLock.Arm(session)
	a.logger.Info().Int64("user_id", session.UserID()).Msg("session opened")

	return session, nil
}

// Logout destroys the current session, if any.
func (a *App) Logout() {
	a.mu.Lock()
	session := a.session
	a.session = nil
	a.mu.Unlock()

	if session == nil {
		return
	}

	a.idleLock.Disarm()
	a.Services.AuthService.Logout(session)
	a.logger.Info().Msg("session closed")
}

// Session returns the open session and counts as user activity.
func (a *App) Session() (*crypto.Session, error) {
	a.mu.Lock()
	session := a.session
	a.mu.Unlock()

	if session == nil || session.Closed() {
		return nil, ErrLocked
	}

	a.idleLock.Touch()
	return session, nil
}

// Touch records user activity for the idle lock.
func (a *App) Touch() {
	a.idleLock.Touch()
}

// Locked delivers a value whenever the idle lock closes the session.
func (a *App) Locked() <-chan struct{} {
	return a.idleLock.Locked()
}
