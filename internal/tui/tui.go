// Package tui is the full-screen terminal interface of the vault client.
//
// Screens: login, list with search, item detail, add/edit form and the
// password generator. The session is looked up through the runtime on
// every operation, so an idle lock is noticed on the next key press.
package tui

import (
	"context"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Runtime owns the current session. *client.App implements it.
type Runtime interface {
	Login(ctx context.Context, email, password, totp string) (*crypto.Session, error)
	Logout()
	Session() (*crypto.Session, error)
	Touch()
	Locked() <-chan struct{}
}

var _ Runtime = (*client.App)(nil)

// TUI is the interactive vault browser.
type TUI struct {
	rt    Runtime
	auth  service.ClientAuthService
	vault service.ClientVaultService

	logger *logger.Logger
}

func New(rt Runtime, services *service.ClientServices, logger *logger.Logger) *TUI {
	return &TUI{
		rt:     rt,
		auth:   services.AuthService,
		vault:  services.VaultService,
		logger: logger,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.rt, t.auth, t.vault, clipboard.WriteAll)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		t.logger.Err(err).Msg("tui stopped with error")
	}
	return err
}
