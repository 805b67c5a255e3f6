package tui

import "github.com/MKhiriev/secure-vault/models"

type loggedInMsg struct {
	err error
}

type listLoadedMsg struct {
	records []models.DecryptedRecord
	err     error
}

type recordSavedMsg struct {
	record models.DecryptedRecord
	err    error
}

type recordDeletedMsg struct {
	err error
}

type copiedMsg struct {
	what string
}

type errMsg struct {
	err error
}

type lockedMsg struct{}

type clearStatusMsg struct{}
