package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/models"
)

type detailModel struct {
	item     models.DecryptedRecord
	revealed bool
}

func (m detailModel) View(status string) string {
	item := m.item

	password := mask(item.Password)
	if m.revealed {
		password = item.Password
	}

	var tags []string
	for _, tag := range item.Tags {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	tagLine := strings.Join(tags, ", ")
	if n := failedTags(item); n > 0 {
		tagLine = strings.TrimSpace(tagLine + " " + warningStyle.Render(fmt.Sprintf("(%d %s)", n, undecryptable)))
	}

	var b strings.Builder
	b.WriteString(field("Title", item.Title, item.Failed(models.FieldTitle)))
	b.WriteString(field("Username", item.Username, item.Failed(models.FieldUsername)))
	b.WriteString(field("Password", password, item.Failed(models.FieldPassword)))
	b.WriteString(field("URL", item.URL, item.Failed(models.FieldURL)))
	b.WriteString(field("Notes", item.Notes, item.Failed(models.FieldNotes)))
	b.WriteString(field("Tags", tagLine, false))
	if item.UpdatedAt != nil {
		b.WriteString(field("Updated", item.UpdatedAt.Local().Format("2006-01-02 15:04"), false))
	}

	if status != "" {
		b.WriteString("\n" + statusStyle.Render(status) + "\n")
	}

	return renderPage("secure-vault · item", b.String(), "c copy password  u copy username  v reveal  e edit  d delete  esc back")
}

// failedTags counts tags listed as "tags[i]" in FailedFields.
func failedTags(item models.DecryptedRecord) int {
	n := 0
	for _, f := range item.FailedFields {
		if strings.HasPrefix(f, models.FieldTags+"[") {
			n++
		}
	}
	return n
}
