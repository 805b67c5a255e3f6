package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	loginErr   error
	loggedIn   bool
	loggedOut  bool
	touches    int
	sessionErr error
	locked     chan struct{}
}

func (f *fakeRuntime) Login(_ context.Context, _, _, _ string) (*crypto.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true
	return nil, nil
}

func (f *fakeRuntime) Logout() { f.loggedOut = true }

func (f *fakeRuntime) Session() (*crypto.Session, error) {
	return nil, f.sessionErr
}

func (f *fakeRuntime) Touch() { f.touches++ }

func (f *fakeRuntime) Locked() <-chan struct{} { return f.locked }

type fakeAuth struct {
	service.ClientAuthService
	signedUp string
}

func (f *fakeAuth) Signup(_ context.Context, email, _ string) error {
	f.signedUp = email
	return nil
}

type fakeVault struct {
	records []models.DecryptedRecord
	added   []models.PlainRecord
	edited  []models.PlainRecord
	deleted []int64
}

func (f *fakeVault) EncryptRecord(*crypto.Session, models.PlainRecord) (models.VaultRecord, error) {
	return models.VaultRecord{}, nil
}

func (f *fakeVault) DecryptRecord(*crypto.Session, models.VaultRecord) models.DecryptedRecord {
	return models.DecryptedRecord{}
}

func (f *fakeVault) List(context.Context, *crypto.Session, string) ([]models.DecryptedRecord, error) {
	return f.records, nil
}

func (f *fakeVault) Get(context.Context, *crypto.Session, int64) (models.DecryptedRecord, error) {
	return models.DecryptedRecord{}, service.ErrRecordNotFound
}

func (f *fakeVault) Add(_ context.Context, _ *crypto.Session, plain models.PlainRecord) (models.DecryptedRecord, error) {
	f.added = append(f.added, plain)
	plain.ID = 100
	return models.DecryptedRecord{PlainRecord: plain}, nil
}

func (f *fakeVault) Edit(_ context.Context, _ *crypto.Session, plain models.PlainRecord) (models.DecryptedRecord, error) {
	f.edited = append(f.edited, plain)
	return models.DecryptedRecord{PlainRecord: plain}, nil
}

func (f *fakeVault) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVault) Export(context.Context, *crypto.Session, io.Writer, bool) (int, error) {
	return 0, nil
}

func (f *fakeVault) Import(context.Context, *crypto.Session, io.Reader) (int, error) {
	return 0, nil
}

type testApp struct {
	rt     *fakeRuntime
	auth   *fakeAuth
	vault  *fakeVault
	copied []string
}

func newTestApp(t *testing.T, records ...models.DecryptedRecord) (*testApp, appModel) {
	t.Helper()
	ta := &testApp{
		rt:    &fakeRuntime{locked: make(chan struct{})},
		auth:  &fakeAuth{},
		vault: &fakeVault{records: records},
	}
	copyFn := func(s string) error {
		ta.copied = append(ta.copied, s)
		return nil
	}
	return ta, newAppModel(context.Background(), ta.rt, ta.auth, ta.vault, copyFn)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(appModel)
	require.True(t, ok)
	return am, cmd
}

func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, keyMsg(k))
	}
	return m, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m appModel, cmd tea.Cmd) appModel {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func loggedIn(t *testing.T, m appModel) appModel {
	t.Helper()
	m, _ = update(t, m, loggedInMsg{})
	m, _ = update(t, m, listLoadedMsg{records: m.vault.(*fakeVault).records})
	require.Equal(t, screenList, m.currentScreen)
	return m
}

var (
	github = models.DecryptedRecord{PlainRecord: models.PlainRecord{
		ID: 1, Title: "GitHub", Username: "octo", Password: "gh-secret", Tags: []string{"dev"},
	}}
	bank = models.DecryptedRecord{PlainRecord: models.PlainRecord{
		ID: 2, Title: "Bank", Username: "me", Password: "bank-secret", URL: "https://bank.example",
	}}
)

func TestAppModel_LoginFlow(t *testing.T) {
	ta, m := newTestApp(t, github, bank)

	m.login.inputs[loginEmail].SetValue("user@example.com")
	m.login.inputs[loginPassword].SetValue("correct horse")

	m, cmd := press(t, m, "enter")
	assert.True(t, m.login.submitting)

	m, cmd = update(t, m, cmd())
	assert.True(t, ta.rt.loggedIn)
	assert.Equal(t, screenList, m.currentScreen)

	m = run(t, m, cmd)
	assert.Len(t, m.list.items, 2)
	assert.Contains(t, m.View(), "GitHub")
	assert.Positive(t, ta.rt.touches)
}

func TestAppModel_LoginRequiresCredentials(t *testing.T) {
	ta, m := newTestApp(t)

	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.True(t, m.showError)
	assert.False(t, ta.rt.loggedIn)

	m, _ = press(t, m, "esc")
	assert.False(t, m.showError)
	assert.Equal(t, screenLogin, m.currentScreen)
}

func TestAppModel_LoginError(t *testing.T) {
	ta, m := newTestApp(t)
	ta.rt.loginErr = service.ErrWrongPassword

	m.login.inputs[loginEmail].SetValue("user@example.com")
	m.login.inputs[loginPassword].SetValue("nope")

	_, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	assert.Equal(t, screenLogin, m.currentScreen)
	assert.True(t, m.showError)
	assert.Contains(t, m.View(), "Invalid email or password")
}

func TestAppModel_SignupThenLogin(t *testing.T) {
	ta, m := newTestApp(t)

	m.login.inputs[loginEmail].SetValue("new@example.com")
	m.login.inputs[loginPassword].SetValue("long enough password")

	m, cmd := press(t, m, "ctrl+n")
	m, _ = update(t, m, cmd())

	assert.Equal(t, "new@example.com", ta.auth.signedUp)
	assert.True(t, ta.rt.loggedIn)
	assert.Equal(t, screenList, m.currentScreen)
}

func TestAppModel_Search(t *testing.T) {
	_, m := newTestApp(t, github, bank)
	m = loggedIn(t, m)

	m, _ = press(t, m, "/", "b", "a", "n")
	require.Len(t, m.list.items, 1)
	assert.Equal(t, "Bank", m.list.items[0].Title)

	m, _ = press(t, m, "enter", "esc")
	assert.Len(t, m.list.items, 2)
}

func TestAppModel_DetailShowsUndecryptableFields(t *testing.T) {
	broken := models.DecryptedRecord{
		PlainRecord:  models.PlainRecord{ID: 3, Title: "Mail", Tags: []string{"", "work"}},
		FailedFields: []string{models.FieldPassword, "tags[0]"},
	}
	_, m := newTestApp(t, broken)
	m = loggedIn(t, m)

	m, _ = press(t, m, "enter")
	require.Equal(t, screenDetail, m.currentScreen)

	view := m.View()
	assert.Contains(t, view, undecryptable)
	assert.Contains(t, view, "work")

	m, _ = press(t, m, "e")
	assert.True(t, m.showError)
	assert.Equal(t, screenDetail, m.currentScreen)
}

func TestAppModel_CopyPasswordAndUsername(t *testing.T) {
	ta, m := newTestApp(t, github)
	m = loggedIn(t, m)

	m, _ = press(t, m, "enter")
	_, cmd := press(t, m, "c")
	m = run(t, m, cmd)
	assert.Contains(t, m.status, "Password")

	_, cmd = press(t, m, "u")
	m = run(t, m, cmd)

	assert.Equal(t, []string{"gh-secret", "octo"}, ta.copied)
	assert.Contains(t, m.status, "Username")
	assert.NotContains(t, m.View(), "gh-secret")

	m, _ = press(t, m, "v")
	assert.Contains(t, m.View(), "gh-secret")
}

func TestAppModel_AddWithGeneratedPassword(t *testing.T) {
	ta, m := newTestApp(t)
	m = loggedIn(t, m)

	m, _ = press(t, m, "n")
	require.Equal(t, screenForm, m.currentScreen)
	m.form.inputs[formTitle].SetValue("Forum")
	m.form.inputs[formUsername].SetValue("poster")

	m, _ = press(t, m, "ctrl+g")
	require.Equal(t, screenGenerator, m.currentScreen)
	generated := m.generator.password
	require.NotEmpty(t, generated)

	m, _ = press(t, m, "enter")
	require.Equal(t, screenForm, m.currentScreen)
	assert.Equal(t, generated, m.form.inputs[formPassword].Value())

	m, cmd := press(t, m, "ctrl+s")
	m, _ = update(t, m, cmd())

	require.Len(t, ta.vault.added, 1)
	assert.Equal(t, "Forum", ta.vault.added[0].Title)
	assert.Equal(t, generated, ta.vault.added[0].Password)
	assert.Equal(t, screenDetail, m.currentScreen)
	assert.Equal(t, "Saved", m.status)
}

func TestAppModel_FormRequiresFields(t *testing.T) {
	ta, m := newTestApp(t)
	m = loggedIn(t, m)

	m, _ = press(t, m, "n")
	m.form.inputs[formTitle].SetValue("Only title")

	m, cmd := press(t, m, "ctrl+s")
	assert.Nil(t, cmd)
	assert.True(t, m.showError)
	assert.Contains(t, m.errorOverlay.message, "Username")
	assert.Empty(t, ta.vault.added)
}

func TestAppModel_EditKeepsID(t *testing.T) {
	ta, m := newTestApp(t, bank)
	m = loggedIn(t, m)

	m, _ = press(t, m, "enter", "e")
	require.Equal(t, screenForm, m.currentScreen)
	assert.Equal(t, "bank-secret", m.form.inputs[formPassword].Value())

	m.form.inputs[formNotes].SetValue("branch on main st")
	_, cmd := press(t, m, "ctrl+s")
	cmd()

	require.Len(t, ta.vault.edited, 1)
	assert.Equal(t, int64(2), ta.vault.edited[0].ID)
	assert.Equal(t, "branch on main st", ta.vault.edited[0].Notes)
}

func TestAppModel_DeleteAsksForConfirmation(t *testing.T) {
	ta, m := newTestApp(t, github)
	m = loggedIn(t, m)

	m, _ = press(t, m, "enter", "d")
	require.True(t, m.showConfirm)
	assert.Contains(t, m.View(), "GitHub")

	m, cmd := press(t, m, "n")
	assert.Nil(t, cmd)
	assert.False(t, m.showConfirm)
	assert.Empty(t, ta.vault.deleted)

	m, _ = press(t, m, "d")
	m, cmd = press(t, m, "y")
	m, _ = update(t, m, cmd())

	assert.Equal(t, []int64{1}, ta.vault.deleted)
	assert.Equal(t, screenList, m.currentScreen)
}

func TestAppModel_Logout(t *testing.T) {
	ta, m := newTestApp(t, github)
	m = loggedIn(t, m)

	m, _ = press(t, m, "l")

	assert.True(t, ta.rt.loggedOut)
	assert.Equal(t, screenLogin, m.currentScreen)
	assert.Empty(t, m.list.all)
}

func TestAppModel_IdleLockReturnsToLogin(t *testing.T) {
	_, m := newTestApp(t, github)
	m = loggedIn(t, m)
	m, _ = press(t, m, "enter")

	m, cmd := update(t, m, lockedMsg{})

	assert.NotNil(t, cmd)
	assert.Equal(t, screenLogin, m.currentScreen)
	assert.Contains(t, m.View(), "Vault locked after inactivity")
	assert.Empty(t, m.detail.item.Password)
}

func TestAppModel_LostSessionReturnsToLogin(t *testing.T) {
	ta, m := newTestApp(t, github)
	m = loggedIn(t, m)
	ta.rt.sessionErr = client.ErrLocked

	_, cmd := press(t, m, "r")
	m = run(t, m, cmd)

	assert.Equal(t, screenLogin, m.currentScreen)
	assert.True(t, m.showError)
}

func TestAppModel_GeneratorOptions(t *testing.T) {
	ta, m := newTestApp(t)
	m = loggedIn(t, m)

	m, _ = press(t, m, "g")
	require.Equal(t, screenGenerator, m.currentScreen)
	length := m.generator.opts.Length

	m, _ = press(t, m, "+", "d", "s")
	assert.Equal(t, length+1, m.generator.opts.Length)
	assert.False(t, m.generator.opts.Digits)
	assert.False(t, m.generator.opts.Symbols)
	assert.Len(t, m.generator.password, length+1)
	assert.NotContains(t, m.View(), "enter use")

	_, cmd := press(t, m, "c")
	cmd()
	assert.Equal(t, []string{m.generator.password}, ta.copied)

	m, _ = press(t, m, "esc")
	assert.Equal(t, screenList, m.currentScreen)
}

func TestAppModel_CopyFailureShowsError(t *testing.T) {
	_, m := newTestApp(t, github)
	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	m = loggedIn(t, m)

	_, cmd := press(t, m, "c")
	m = run(t, m, cmd)

	assert.True(t, m.showError)
	assert.Contains(t, m.errorOverlay.message, "no clipboard")
}

func TestWaitForLock(t *testing.T) {
	locked := make(chan struct{})
	close(locked)
	assert.Equal(t, lockedMsg{}, waitForLock(context.Background(), locked)())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, waitForLock(ctx, make(chan struct{}))())
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "server down", err: service.ErrServerUnavailable, want: "Server is unavailable, check your network"},
		{name: "locked", err: client.ErrLocked, want: "Vault is locked, log in again"},
		{name: "closed session", err: crypto.ErrSessionClosed, want: "Vault is locked, log in again"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}
