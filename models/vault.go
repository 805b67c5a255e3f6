// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Field names of a vault record. They are used in validation errors and in
// DecryptedRecord.FailedFields.
const (
	FieldTitle    = "title"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldURL      = "url"
	FieldNotes    = "notes"
	FieldTags     = "tags"
)

// VaultRecord is a single vault item as it is stored on the server and
// transported over the wire. Every user-supplied field is a CipherString;
// only ownership and timestamps are plaintext.
type VaultRecord struct {
	// ID is the unique identifier of the record in the database.
	ID int64 `json:"_id,omitempty"`

	// UserID is the owner of this record.
	UserID int64 `json:"userId,omitempty"`

	Title    CipherString   `json:"title"`
	Username CipherString   `json:"username"`
	Password CipherString   `json:"password"`
	URL      CipherString   `json:"url"`
	Notes    CipherString   `json:"notes"`
	Tags     []CipherString `json:"tags"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt *time.Time `json:"createdAt,omitempty"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// TableName returns the name of the database table
// associated with the VaultRecord model.
func (v VaultRecord) TableName() string {
	return "vault_items"
}

// UnmarshalJSON accepts "_id" and "userId" as numbers or strings. Exports
// written by the web client carry hex object ids there; such ids cannot be
// mapped and decode as zero, which import ignores anyway.
func (v *VaultRecord) UnmarshalJSON(data []byte) error {
	type plain VaultRecord
	aux := struct {
		*plain
		ID     json.RawMessage `json:"_id"`
		UserID json.RawMessage `json:"userId"`
	}{plain: (*plain)(v)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.ID = lenientID(aux.ID)
	v.UserID = lenientID(aux.UserID)
	return nil
}

func lenientID(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		id, _ := strconv.ParseInt(s, 10, 64)
		return id
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	return 0
}

// VaultRecordUpdate is a partial update of a stored record.
// Only non-nil fields are written.
type VaultRecordUpdate struct {
	ID     int64 `json:"-"`
	UserID int64 `json:"-"`

	Title    *CipherString   `json:"title,omitempty"`
	Username *CipherString   `json:"username,omitempty"`
	Password *CipherString   `json:"password,omitempty"`
	URL      *CipherString   `json:"url,omitempty"`
	Notes    *CipherString   `json:"notes,omitempty"`
	Tags     *[]CipherString `json:"tags,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u VaultRecordUpdate) IsEmpty() bool {
	return u.Title == nil && u.Username == nil && u.Password == nil &&
		u.URL == nil && u.Notes == nil && u.Tags == nil
}

// PlainRecord is the client-side plaintext form of a vault item,
// as entered by the user before encryption.
type PlainRecord struct {
	ID       int64
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
	Tags     []string
}

// DecryptedRecord is the result of decrypting a VaultRecord.
//
// Decryption never fails as a whole: a field that could not be decrypted is
// left empty and its name is listed in FailedFields. A failed tag is listed
// as "tags[i]".
type DecryptedRecord struct {
	PlainRecord

	CreatedAt *time.Time
	UpdatedAt *time.Time

	FailedFields []string
}

// Failed reports whether the named field could not be decrypted.
func (d DecryptedRecord) Failed(field string) bool {
	for _, f := range d.FailedFields {
		if f == field {
			return true
		}
	}
	return false
}

// HasFailures reports whether any field of the record failed to decrypt.
func (d DecryptedRecord) HasFailures() bool {
	return len(d.FailedFields) > 0
}

// ExportDocument is the on-disk format of a vault export.
// Fields stay ciphertext; the file is only readable with the same key.
type ExportDocument struct {
	VaultData []VaultRecord `json:"vaultData"`
}
