package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenDetail
	screenForm
	screenGenerator
)

type appModel struct {
	ctx             context.Context
	rt              Runtime
	auth            service.ClientAuthService
	vault           service.ClientVaultService
	copyToClipboard func(string) error

	currentScreen screen
	// generatorBack is the screen esc returns to from the generator.
	generatorBack screen

	login     loginModel
	list      listModel
	detail    detailModel
	form      formModel
	generator generatorModel

	status        string
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete int64
}

func newAppModel(ctx context.Context, rt Runtime, auth service.ClientAuthService, vault service.ClientVaultService, copyFn func(string) error) appModel {
	return appModel{
		ctx:             ctx,
		rt:              rt,
		auth:            auth,
		vault:           vault,
		copyToClipboard: copyFn,
		currentScreen:   screenLogin,
		login:           newLoginModel(),
		list:            newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return waitForLock(m.ctx, m.rt.Locked())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.rt.Touch()

		if key.Matches(msg, keys.forceQuit) {
			m.rt.Logout()
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				return m, m.cmdDelete(m.pendingDelete)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = 0
			}
			return m, nil
		}
	case lockedMsg:
		m = m.toLogin("Vault locked after inactivity")
		return m, waitForLock(m.ctx, m.rt.Locked())
	case loggedInMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.login = newLoginModel()
		m.list = newListModel()
		m.currentScreen = screenList
		return m, m.cmdLoadList()
	case listLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			return m.handleError(msg.err)
		}
		m.list = m.list.setRecords(msg.records)
		return m, nil
	case recordSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			return m.handleError(msg.err)
		}
		m.detail = detailModel{item: msg.record}
		m.currentScreen = screenDetail
		m.status = "Saved"
		return m, tea.Batch(m.cmdLoadList(), cmdClearStatus())
	case recordDeletedMsg:
		m.pendingDelete = 0
		if msg.err != nil {
			return m.handleError(msg.err)
		}
		m.currentScreen = screenList
		m.status = "Deleted"
		return m, tea.Batch(m.cmdLoadList(), cmdClearStatus())
	case copiedMsg:
		m.status = msg.what + " copied to clipboard"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case errMsg:
		return m.handleError(msg.err)
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenGenerator:
		return m.updateGenerator(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLogin:
		body = m.login.View()
	case screenList:
		body = m.list.View(m.status)
	case screenDetail:
		body = m.detail.View(m.status)
	case screenForm:
		body = m.form.View()
	case screenGenerator:
		body = m.generator.View(m.status)
	}

	switch {
	case m.showError:
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.errorOverlay.View())
	case m.showConfirm:
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.confirm.View())
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// handleError sends the user back to login when the session is gone and
// shows the error otherwise.
func (m appModel) handleError(err error) (tea.Model, tea.Cmd) {
	if isLocked(err) {
		m = m.toLogin("")
	}
	m.showErrorf(humanizeError(err))
	return m, nil
}

func (m appModel) toLogin(status string) appModel {
	m.login = newLoginModel()
	m.login.status = status
	m.list = newListModel()
	m.detail = detailModel{}
	m.form = formModel{}
	m.showConfirm = false
	m.pendingDelete = 0
	m.currentScreen = screenLogin
	return m
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if m.login.submitting {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			m.login = m.login.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = m.login.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter), key.Matches(keyMsg, keys.signup):
			email, password, totp := m.login.credentials()
			if email == "" || password == "" {
				m.showErrorf("Email and password are required")
				return m, nil
			}
			m.login.submitting = true
			m.login.status = ""
			if key.Matches(keyMsg, keys.signup) {
				return m, m.cmdSignupAndLogin(email, password)
			}
			return m, m.cmdLogin(email, password, totp)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.list.searching {
		if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.esc) {
			m.list.searching = false
			m.list.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		m.list = m.list.applyFilter()
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.items)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		return m, m.list.search.Focus()
	case key.Matches(keyMsg, keys.esc):
		m.list.search.SetValue("")
		m.list = m.list.applyFilter()
	case key.Matches(keyMsg, keys.enter):
		item, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.detail = detailModel{item: item}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.newItem):
		m.form = newFormModel(nil)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.copy):
		item, ok := m.list.current()
		if !ok || item.Password == "" {
			return m, nil
		}
		return m, m.cmdCopy("Password", item.Password)
	case key.Matches(keyMsg, keys.generator):
		m.generator = newGeneratorModel(false)
		m.generatorBack = screenList
		m.currentScreen = screenGenerator
	case key.Matches(keyMsg, keys.reload):
		m.list.loading = true
		return m, m.cmdLoadList()
	case key.Matches(keyMsg, keys.logout):
		m.rt.Logout()
		m = m.toLogin("Logged out")
	case key.Matches(keyMsg, keys.quit):
		m.rt.Logout()
		return m, tea.Quit
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	item := m.detail.item
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.reveal):
		m.detail.revealed = !m.detail.revealed
	case key.Matches(keyMsg, keys.copy):
		if item.Password == "" {
			return m, nil
		}
		return m, m.cmdCopy("Password", item.Password)
	case key.Matches(keyMsg, keys.copyUser):
		if item.Username == "" {
			return m, nil
		}
		return m, m.cmdCopy("Username", item.Username)
	case key.Matches(keyMsg, keys.edit):
		if item.HasFailures() {
			m.showErrorf("Some fields could not be decrypted; editing would overwrite them")
			return m, nil
		}
		m.form = newFormModel(&item)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = item.Title
		if m.confirm.message == "" {
			m.confirm.message = "this item"
		}
		m.pendingDelete = item.ID
	case key.Matches(keyMsg, keys.logout):
		m.rt.Logout()
		m = m.toLogin("Logged out")
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if m.form.submitting {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, keys.esc):
			if m.form.editing {
				m.currentScreen = screenDetail
			} else {
				m.currentScreen = screenList
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.enter) && m.form.focus < formFieldCount-1:
			m.form = m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.useGen):
			m.generator = newGeneratorModel(true)
			m.generatorBack = screenForm
			m.currentScreen = screenGenerator
			return m, nil
		case key.Matches(keyMsg, keys.save), key.Matches(keyMsg, keys.enter):
			if missing := m.form.missingRequired(); missing != "" {
				m.showErrorf(strings.ToUpper(missing[:1]) + missing[1:] + " is required")
				return m, nil
			}
			m.form.submitting = true
			return m, m.cmdSave(m.form.toPlain(), m.form.editing)
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateGenerator(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = m.generatorBack
	case key.Matches(keyMsg, keys.enter):
		if !m.generator.fromForm {
			return m, nil
		}
		m.form.inputs[formPassword].SetValue(m.generator.password)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.left):
		m.generator = m.generator.resize(-1)
	case key.Matches(keyMsg, keys.right):
		m.generator = m.generator.resize(1)
	case key.Matches(keyMsg, keys.digits):
		m.generator.opts.Digits = !m.generator.opts.Digits
		m.generator = m.generator.regenerate()
	case key.Matches(keyMsg, keys.symbols):
		m.generator.opts.Symbols = !m.generator.opts.Symbols
		m.generator = m.generator.regenerate()
	case key.Matches(keyMsg, keys.lookalike):
		m.generator.opts.AllowLookalikes = !m.generator.opts.AllowLookalikes
		m.generator = m.generator.regenerate()
	case key.Matches(keyMsg, keys.reload):
		m.generator = m.generator.regenerate()
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopy("Password", m.generator.password)
	}

	return m, nil
}
