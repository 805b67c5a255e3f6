package service

import (
	"context"
	"io"

	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/models"
)

// ClientAuthService registers accounts and opens sessions. The password
// never leaves this service except inside the login request; the vault key
// is derived locally and lives only in the returned Session.
type ClientAuthService interface {
	Signup(ctx context.Context, email, password string) error

	// Login authenticates against the server and derives the session key
	// from the password and the account's KDF parameters. totp may be empty
	// for accounts without two-factor authentication.
	Login(ctx context.Context, email, password, totp string) (*crypto.Session, error)

	// Logout destroys the session and forgets the bearer token.
	Logout(session *crypto.Session)

	SetupTwoFactor(ctx context.Context) (models.TwoFactorSetupResponse, error)
	VerifyTwoFactor(ctx context.Context, code string) error
}

// ClientVaultService encrypts, stores and reads vault records. Every call
// that touches plaintext takes the Session explicitly.
type ClientVaultService interface {
	// EncryptRecord encrypts every field of plain. Any field failure aborts
	// the whole record.
	EncryptRecord(session *crypto.Session, plain models.PlainRecord) (models.VaultRecord, error)

	// DecryptRecord never fails as a whole; fields that cannot be opened
	// are listed in FailedFields.
	DecryptRecord(session *crypto.Session, record models.VaultRecord) models.DecryptedRecord

	// List returns the caller's records, newest first, filtered by query.
	// An empty query returns everything.
	List(ctx context.Context, session *crypto.Session, query string) ([]models.DecryptedRecord, error)
	Get(ctx context.Context, session *crypto.Session, id int64) (models.DecryptedRecord, error)

	Add(ctx context.Context, session *crypto.Session, plain models.PlainRecord) (models.DecryptedRecord, error)

	// Edit replaces every field of the record plain.ID with plain.
	Edit(ctx context.Context, session *crypto.Session, plain models.PlainRecord) (models.DecryptedRecord, error)
	Delete(ctx context.Context, id int64) error

	// Export writes the vault as an export document. Fields stay
	// ciphertext. With legacy set, every field is re-encrypted into the
	// envelope of the original web client under the key it derives.
	Export(ctx context.Context, session *crypto.Session, w io.Writer, legacy bool) (int, error)

	// Import reads an export document and stores its records under the
	// current account. Web client fields are re-encrypted under the
	// session key first.
	Import(ctx context.Context, session *crypto.Session, r io.Reader) (int, error)
}
