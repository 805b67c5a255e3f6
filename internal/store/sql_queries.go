package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/secure-vault/models"
)

var (
	usersTable = models.User{}.TableName()
	vaultTable = models.VaultRecord{}.TableName()
)

var userColumns = []string{
	"user_id",
	"email",
	"password_hash",
	"kdf_salt",
	"kdf_iterations",
	"totp_secret",
	"totp_pending_secret",
	"two_factor_enabled",
	"created_at",
}

var vaultColumns = []string{
	"id",
	"user_id",
	"title",
	"username",
	"password",
	"url",
	"notes",
	"tags",
	"created_at",
	"updated_at",
}

// vaultInsertColumns is vaultColumns without the generated id.
var vaultInsertColumns = vaultColumns[1:]

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.PasswordHash,
		&u.KDFSalt,
		&u.KDFIterations,
		&u.TOTPSecret,
		&u.TOTPPendingSecret,
		&u.TwoFactorEnabled,
		&u.CreatedAt,
	)
	return u, err
}

func scanVaultRecord(row rowScanner) (models.VaultRecord, error) {
	var (
		rec                  models.VaultRecord
		tags                 string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Username,
		&rec.Password,
		&rec.URL,
		&rec.Notes,
		&tags,
		&createdAt,
		&updatedAt,
	); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	decoded, err := decodeTags(tags)
	if err != nil {
		return models.VaultRecord{}, err
	}
	rec.Tags = decoded
	rec.CreatedAt = &createdAt
	rec.UpdatedAt = &updatedAt

	return rec, nil
}

// encodeTags stores the tag list as a JSON array in a text column, which
// both PostgreSQL and SQLite handle without extensions.
func encodeTags(tags []models.CipherString) (string, error) {
	if tags == nil {
		tags = []models.CipherString{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingTags, err)
	}
	return string(b), nil
}

func decodeTags(column string) ([]models.CipherString, error) {
	tags := []models.CipherString{}
	if column == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(column), &tags); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingTags, err)
	}
	if tags == nil {
		tags = []models.CipherString{}
	}
	return tags, nil
}
