package tui

import (
	"strings"

	"github.com/MKhiriev/secure-vault/models"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	formTitle = iota
	formUsername
	formPassword
	formURL
	formNotes
	formTags
	formFieldCount
)

var formPlaceholders = [formFieldCount]string{
	"title",
	"username",
	"password (ctrl+g to generate)",
	"url",
	"notes",
	"tags, comma separated",
}

type formModel struct {
	inputs     []textinput.Model
	focus      int
	editing    bool
	id         int64
	submitting bool
}

// newFormModel builds an empty form, or one prefilled from item for edit.
func newFormModel(item *models.DecryptedRecord) formModel {
	inputs := make([]textinput.Model, formFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = formPlaceholders[i]
		inputs[i].Width = 50
	}
	inputs[formPassword].EchoMode = textinput.EchoPassword
	inputs[formPassword].EchoCharacter = '*'
	inputs[formTitle].Focus()

	m := formModel{inputs: inputs}
	if item == nil {
		return m
	}

	m.editing = true
	m.id = item.ID
	m.inputs[formTitle].SetValue(item.Title)
	m.inputs[formUsername].SetValue(item.Username)
	m.inputs[formPassword].SetValue(item.Password)
	m.inputs[formURL].SetValue(item.URL)
	m.inputs[formNotes].SetValue(item.Notes)
	m.inputs[formTags].SetValue(strings.Join(item.Tags, ", "))
	return m
}

func (m formModel) toPlain() models.PlainRecord {
	var tags []string
	for _, tag := range strings.Split(m.inputs[formTags].Value(), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return models.PlainRecord{
		ID:       m.id,
		Title:    strings.TrimSpace(m.inputs[formTitle].Value()),
		Username: strings.TrimSpace(m.inputs[formUsername].Value()),
		Password: m.inputs[formPassword].Value(),
		URL:      strings.TrimSpace(m.inputs[formURL].Value()),
		Notes:    m.inputs[formNotes].Value(),
		Tags:     tags,
	}
}

// missingRequired names the first empty required field, or "".
func (m formModel) missingRequired() string {
	plain := m.toPlain()
	switch {
	case plain.Title == "":
		return "title"
	case plain.Username == "":
		return "username"
	case plain.Password == "":
		return "password"
	}
	return ""
}

func (m formModel) focusNext() formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) focusPrev() formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) View() string {
	var b strings.Builder
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\nSaving...\n")
	}

	title := "secure-vault · new item"
	if m.editing {
		title = "secure-vault · edit item"
	}
	return renderPage(title, b.String(), "ctrl+s save  tab next  ctrl+g generate password  esc cancel")
}
