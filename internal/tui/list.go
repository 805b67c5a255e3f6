package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/charmbracelet/bubbles/textinput"
)

type listModel struct {
	all     []models.DecryptedRecord
	items   []models.DecryptedRecord
	idx     int
	loading bool

	search    textinput.Model
	searching bool
}

func newListModel() listModel {
	search := textinput.New()
	search.Placeholder = "search title, username, url, tags"
	search.Prompt = "/ "
	search.Width = 40

	return listModel{search: search, loading: true}
}

func (m listModel) setRecords(records []models.DecryptedRecord) listModel {
	m.all = records
	return m.applyFilter()
}

// applyFilter re-runs the search over the loaded records.
func (m listModel) applyFilter() listModel {
	m.items = service.Search(m.all, m.search.Value())
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	return m
}

func (m listModel) current() (models.DecryptedRecord, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.DecryptedRecord{}, false
	}
	return m.items[m.idx], true
}

func (m listModel) View(status string) string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.all) == 0:
		b.WriteString("Your vault is empty\n")
	case len(m.items) == 0:
		b.WriteString("Nothing matches\n")
	default:
		for i, item := range m.items {
			title := item.Title
			if item.Failed(models.FieldTitle) {
				title = undecryptable
			}
			line := fmt.Sprintf("%-30s %s", fitText(title, 30), fitText(item.Username, 30))
			if item.HasFailures() && !item.Failed(models.FieldTitle) {
				line += " " + warningStyle.Render("⚠")
			}
			if i == m.idx {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	if status != "" {
		b.WriteString("\n" + statusStyle.Render(status) + "\n")
	}

	hotKeys := "enter open  / search  n new  c copy password  g generator  r reload  l log out  q quit"
	if m.searching {
		hotKeys = "enter/esc finish search"
	}
	return renderPage(fmt.Sprintf("secure-vault · %d items", len(m.all)), b.String(), hotKeys)
}
