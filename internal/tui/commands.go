package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/secure-vault/models"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 2 * time.Second

func (m appModel) cmdLogin(email, password, totp string) tea.Cmd {
	ctx, rt := m.ctx, m.rt
	return func() tea.Msg {
		_, err := rt.Login(ctx, email, password, totp)
		return loggedInMsg{err: err}
	}
}

func (m appModel) cmdSignupAndLogin(email, password string) tea.Cmd {
	ctx, rt, auth := m.ctx, m.rt, m.auth
	return func() tea.Msg {
		if err := auth.Signup(ctx, email, password); err != nil {
			return loggedInMsg{err: err}
		}
		_, err := rt.Login(ctx, email, password, "")
		return loggedInMsg{err: err}
	}
}

func (m appModel) cmdLoadList() tea.Cmd {
	ctx, rt, vault := m.ctx, m.rt, m.vault
	return func() tea.Msg {
		session, err := rt.Session()
		if err != nil {
			return listLoadedMsg{err: err}
		}
		records, err := vault.List(ctx, session, "")
		return listLoadedMsg{records: records, err: err}
	}
}

func (m appModel) cmdSave(plain models.PlainRecord, editing bool) tea.Cmd {
	ctx, rt, vault := m.ctx, m.rt, m.vault
	return func() tea.Msg {
		session, err := rt.Session()
		if err != nil {
			return recordSavedMsg{err: err}
		}

		var saved models.DecryptedRecord
		if editing {
			saved, err = vault.Edit(ctx, session, plain)
		} else {
			saved, err = vault.Add(ctx, session, plain)
		}
		return recordSavedMsg{record: saved, err: err}
	}
}

func (m appModel) cmdDelete(id int64) tea.Cmd {
	ctx, vault := m.ctx, m.vault
	return func() tea.Msg {
		return recordDeletedMsg{err: vault.Delete(ctx, id)}
	}
}

func (m appModel) cmdCopy(what, text string) tea.Cmd {
	copyFn := m.copyToClipboard
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return errMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{what: what}
	}
}

func waitForLock(ctx context.Context, locked <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-locked:
			return lockedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
