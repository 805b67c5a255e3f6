package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	loginEmail = iota
	loginPassword
	loginTOTP
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	totp := textinput.New()
	totp.Placeholder = "2FA code (if enabled)"
	totp.CharLimit = 6
	totp.Width = 40

	return loginModel{inputs: []textinput.Model{email, password, totp}}
}

func (m loginModel) credentials() (email, password, totp string) {
	return strings.TrimSpace(m.inputs[loginEmail].Value()),
		m.inputs[loginPassword].Value(),
		strings.TrimSpace(m.inputs[loginTOTP].Value())
}

func (m loginModel) focusNext() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) focusPrev() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) View() string {
	var b strings.Builder
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\nLogging in...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	return renderPage("secure-vault · log in", b.String(), "enter log in  ctrl+n sign up  tab next field")
}
