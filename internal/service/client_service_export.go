package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/models"
)

// ExportFileName returns the default export file name for the given day,
// e.g. secure-vault-export-2026-10-19.json.
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("secure-vault-export-%s.json", day.Format(time.DateOnly))
}

func (c *clientVaultService) Export(ctx context.Context, session *crypto.Session, w io.Writer, legacy bool) (int, error) {
	records, err := c.adapter.ListVault(ctx)
	if err != nil {
		return 0, mapAdapterError(err)
	}

	if legacy {
		if records, err = c.reencryptLegacy(session, records); err != nil {
			return 0, err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err = enc.Encode(models.ExportDocument{VaultData: records}); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWritingExport, err)
	}

	c.logger.Info().Int("count", len(records)).Bool("legacy", legacy).Msg("vault exported")
	return len(records), nil
}

// reencryptLegacy converts records into the envelope the original web
// client reads, under the key it derives from the password and email. A
// record with a field that cannot be decrypted aborts the export: writing
// it would silently lose data.
func (c *clientVaultService) reencryptLegacy(session *crypto.Session, records []models.VaultRecord) ([]models.VaultRecord, error) {
	if session == nil || session.Closed() {
		return nil, ErrNotLoggedIn
	}

	plains := make([]models.PlainRecord, 0, len(records))
	for _, rec := range records {
		plain := c.DecryptRecord(session, rec)
		if plain.HasFailures() {
			return nil, fmt.Errorf("%w: record %d has unreadable fields %v", ErrWritingExport, rec.ID, plain.FailedFields)
		}
		plains = append(plains, plain.PlainRecord)
	}

	out := make([]models.VaultRecord, 0, len(records))
	err := session.WithLegacyKeys(func(_ crypto.SessionKey, legacy []crypto.SessionKey) error {
		if len(legacy) == 0 {
			return crypto.ErrNoLegacyKeys
		}
		for i, plain := range plains {
			legacyRec, err := sealRecord(c.legacyCodec, legacy[0], plain)
			if err != nil {
				return fmt.Errorf("record %d: %w", records[i].ID, err)
			}
			legacyRec.UserID = records[i].UserID
			legacyRec.CreatedAt, legacyRec.UpdatedAt = records[i].CreatedAt, records[i].UpdatedAt
			out = append(out, legacyRec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritingExport, err)
	}
	return out, nil
}

func (c *clientVaultService) Import(ctx context.Context, session *crypto.Session, r io.Reader) (int, error) {
	if session == nil || session.Closed() {
		return 0, ErrNotLoggedIn
	}

	var doc struct {
		VaultData json.RawMessage `json:"vaultData"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadingExport, err)
	}

	var records []models.VaultRecord
	if len(doc.VaultData) == 0 || doc.VaultData[0] != '[' {
		return 0, fmt.Errorf("%w: vaultData must be an array", ErrReadingExport)
	}
	if err := json.Unmarshal(doc.VaultData, &records); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadingExport, err)
	}

	unreadable, err := c.convertLegacy(session, records)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEncryptingRecord, err)
	}
	if unreadable > 0 {
		c.logger.Warn().Int("fields", unreadable).Msg("imported web client fields that no account key opens")
	}

	resp, err := c.adapter.ImportVault(ctx, records)
	if err != nil {
		return 0, mapAdapterError(err)
	}

	c.logger.Info().Int("count", resp.Count).Msg("vault imported")
	return resp.Count, nil
}

// convertLegacy re-encrypts every web client field of records into the
// default envelope under the session key. The web client keys are tried
// first, then the session key. A field none of them opens is kept verbatim
// and counted.
func (c *clientVaultService) convertLegacy(session *crypto.Session, records []models.VaultRecord) (int, error) {
	unreadable := 0

	err := session.WithLegacyKeys(func(key crypto.SessionKey, legacy []crypto.SessionKey) error {
		candidates := append(slices.Clip(legacy), key)

		convert := func(ct *models.CipherString) error {
			if t, err := crypto.DetectEnvelope(*ct); err != nil || t != crypto.EnvelopeLegacy {
				return nil
			}
			for _, k := range candidates {
				res := c.codec.Open(*ct, k)
				if !res.OK() {
					continue
				}
				sealed, err := c.codec.Encrypt(&res.Plaintext, key)
				if err != nil {
					return err
				}
				*ct = sealed
				return nil
			}
			unreadable++
			return nil
		}

		for i := range records {
			rec := &records[i]
			for _, ct := range []*models.CipherString{&rec.Title, &rec.Username, &rec.Password, &rec.URL, &rec.Notes} {
				if err := convert(ct); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			for j := range rec.Tags {
				if err := convert(&rec.Tags[j]); err != nil {
					return fmt.Errorf("record %d tag %d: %w", i, j, err)
				}
			}
		}
		return nil
	})
	return unreadable, err
}
