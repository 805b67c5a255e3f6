package crypto

import "github.com/MKhiriev/secure-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/field_codec_mock.go -package=mock

// FieldCodec encrypts and decrypts single vault fields.
//
// Encrypt treats a nil plaintext as "field not set" and returns the empty
// cipher string without touching the cipher. Decrypt and Open treat the
// empty cipher string as an empty field, not as a failure.
type FieldCodec interface {
	// Encrypt seals plaintext with a fresh salt and nonce. Two calls with
	// the same input return different cipher strings.
	Encrypt(plaintext *string, key SessionKey) (models.CipherString, error)

	// Decrypt returns the plaintext, or "" when the cipher string cannot be
	// opened. The failure is logged, never returned.
	Decrypt(ciphertext models.CipherString, key SessionKey) string

	// Open is Decrypt with an explicit per-field failure.
	Open(ciphertext models.CipherString, key SessionKey) DecryptResult

	// EncryptTags encrypts each tag independently, preserving order.
	EncryptTags(tags []string, key SessionKey) ([]models.CipherString, error)

	// DecryptTags opens each tag independently, preserving order.
	DecryptTags(tags []models.CipherString, key SessionKey) []DecryptResult
}
