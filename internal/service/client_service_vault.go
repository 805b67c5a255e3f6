package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
)

type clientVaultService struct {
	adapter adapter.ServerAdapter
	codec   crypto.FieldCodec

	// legacyCodec writes the envelope of the original web client and is
	// only used by legacy exports, under the web client's key.
	legacyCodec crypto.FieldCodec

	logger *logger.Logger
}

func NewClientVaultService(serverAdapter adapter.ServerAdapter, codec crypto.FieldCodec, logger *logger.Logger) ClientVaultService {
	return &clientVaultService{
		adapter:     serverAdapter,
		codec:       codec,
		legacyCodec: crypto.NewFieldCodec(logger, crypto.WithEnvelope(crypto.EnvelopeLegacy)),
		logger:      logger,
	}
}

func (c *clientVaultService) EncryptRecord(session *crypto.Session, plain models.PlainRecord) (models.VaultRecord, error) {
	return encryptRecord(c.codec, session, plain)
}

// encryptRecord seals every field of plain with codec under the session
// key. Title, username and password are always encrypted; an empty url or
// notes is "not set".
func encryptRecord(codec crypto.FieldCodec, session *crypto.Session, plain models.PlainRecord) (models.VaultRecord, error) {
	if session == nil {
		return models.VaultRecord{}, ErrNotLoggedIn
	}

	var record models.VaultRecord
	err := session.WithKey(func(key crypto.SessionKey) error {
		var err error
		record, err = sealRecord(codec, key, plain)
		return err
	})
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrEncryptingRecord, err)
	}

	record.UserID = session.UserID()
	return record, nil
}

func sealRecord(codec crypto.FieldCodec, key crypto.SessionKey, plain models.PlainRecord) (models.VaultRecord, error) {
	record := models.VaultRecord{ID: plain.ID}

	fields := []struct {
		name  string
		value *string
		dst   *models.CipherString
	}{
		{models.FieldTitle, &plain.Title, &record.Title},
		{models.FieldUsername, &plain.Username, &record.Username},
		{models.FieldPassword, &plain.Password, &record.Password},
		{models.FieldURL, optional(plain.URL), &record.URL},
		{models.FieldNotes, optional(plain.Notes), &record.Notes},
	}
	for _, f := range fields {
		ct, err := codec.Encrypt(f.value, key)
		if err != nil {
			return models.VaultRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = ct
	}

	tags, err := codec.EncryptTags(plain.Tags, key)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%s: %w", models.FieldTags, err)
	}
	record.Tags = tags
	return record, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (c *clientVaultService) DecryptRecord(session *crypto.Session, record models.VaultRecord) models.DecryptedRecord {
	out := models.DecryptedRecord{
		PlainRecord: models.PlainRecord{ID: record.ID},
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}

	fields := []struct {
		name  string
		value models.CipherString
		dst   *string
	}{
		{models.FieldTitle, record.Title, &out.Title},
		{models.FieldUsername, record.Username, &out.Username},
		{models.FieldPassword, record.Password, &out.Password},
		{models.FieldURL, record.URL, &out.URL},
		{models.FieldNotes, record.Notes, &out.Notes},
	}

	err := withSession(session, func(key crypto.SessionKey) error {
		for _, f := range fields {
			res := c.codec.Open(f.value, key)
			if !res.OK() {
				out.FailedFields = append(out.FailedFields, f.name)
				continue
			}
			*f.dst = res.Plaintext
		}

		out.Tags = make([]string, 0, len(record.Tags))
		for i, res := range c.codec.DecryptTags(record.Tags, key) {
			if !res.OK() {
				out.FailedFields = append(out.FailedFields, fmt.Sprintf("%s[%d]", models.FieldTags, i))
				continue
			}
			out.Tags = append(out.Tags, res.Plaintext)
		}
		return nil
	})
	if err != nil {
		// No key: every stored field is unreadable.
		for _, f := range fields {
			if !f.value.IsEmpty() {
				out.FailedFields = append(out.FailedFields, f.name)
			}
		}
		for i := range record.Tags {
			out.FailedFields = append(out.FailedFields, fmt.Sprintf("%s[%d]", models.FieldTags, i))
		}
	}

	if out.HasFailures() {
		c.logger.Warn().
			Int64("record_id", record.ID).
			Strs("failed_fields", out.FailedFields).
			Msg("vault record partially decrypted")
	}
	return out
}

func withSession(session *crypto.Session, fn func(crypto.SessionKey) error) error {
	if session == nil {
		return ErrNotLoggedIn
	}
	return session.WithKey(fn)
}

func (c *clientVaultService) List(ctx context.Context, session *crypto.Session, query string) ([]models.DecryptedRecord, error) {
	if session == nil || session.Closed() {
		return nil, ErrNotLoggedIn
	}

	records, err := c.adapter.ListVault(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	out := make([]models.DecryptedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, c.DecryptRecord(session, rec))
	}

	return Search(out, query), nil
}

// Search keeps the records whose title, username, url or any tag contains
// query, ignoring case. Order is preserved.
func Search(records []models.DecryptedRecord, query string) []models.DecryptedRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	out := make([]models.DecryptedRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, query) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec models.DecryptedRecord, lowerQuery string) bool {
	for _, s := range []string{rec.Title, rec.Username, rec.URL} {
		if strings.Contains(strings.ToLower(s), lowerQuery) {
			return true
		}
	}
	return slices.ContainsFunc(rec.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), lowerQuery)
	})
}

func (c *clientVaultService) Get(ctx context.Context, session *crypto.Session, id int64) (models.DecryptedRecord, error) {
	records, err := c.List(ctx, session, "")
	if err != nil {
		return models.DecryptedRecord{}, err
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.DecryptedRecord{}, fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
}

func (c *clientVaultService) Add(ctx context.Context, session *crypto.Session, plain models.PlainRecord) (models.DecryptedRecord, error) {
	if err := checkPlainRecord(plain); err != nil {
		return models.DecryptedRecord{}, err
	}

	record, err := c.EncryptRecord(session, plain)
	if err != nil {
		return models.DecryptedRecord{}, err
	}
	record.ID = 0

	created, err := c.adapter.CreateVaultItem(ctx, record)
	if err != nil {
		return models.DecryptedRecord{}, mapAdapterError(err)
	}

	return c.DecryptRecord(session, created), nil
}

func (c *clientVaultService) Edit(ctx context.Context, session *crypto.Session, plain models.PlainRecord) (models.DecryptedRecord, error) {
	if plain.ID <= 0 {
		return models.DecryptedRecord{}, fmt.Errorf("%w: id", ErrInvalidDataProvided)
	}
	if err := checkPlainRecord(plain); err != nil {
		return models.DecryptedRecord{}, err
	}

	record, err := c.EncryptRecord(session, plain)
	if err != nil {
		return models.DecryptedRecord{}, err
	}

	tags := record.Tags
	updated, err := c.adapter.UpdateVaultItem(ctx, models.VaultRecordUpdate{
		ID:       plain.ID,
		UserID:   record.UserID,
		Title:    &record.Title,
		Username: &record.Username,
		Password: &record.Password,
		URL:      &record.URL,
		Notes:    &record.Notes,
		Tags:     &tags,
	})
	if err != nil {
		return models.DecryptedRecord{}, mapAdapterError(err)
	}

	return c.DecryptRecord(session, updated), nil
}

func (c *clientVaultService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id", ErrInvalidDataProvided)
	}
	return mapAdapterError(c.adapter.DeleteVaultItem(ctx, id))
}

// checkPlainRecord mirrors the server's required fields so that a bad
// record is rejected before anything is encrypted.
func checkPlainRecord(plain models.PlainRecord) error {
	switch {
	case plain.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidDataProvided)
	case plain.Username == "":
		return fmt.Errorf("%w: username is required", ErrInvalidDataProvided)
	case plain.Password == "":
		return fmt.Errorf("%w: password is required", ErrInvalidDataProvided)
	}
	for _, tag := range plain.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: tags cannot contain empty values", ErrInvalidDataProvided)
		}
	}
	return nil
}
