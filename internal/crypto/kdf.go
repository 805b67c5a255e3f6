// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor for new accounts.
	DefaultIterations = 600000

	// LegacyIterations reproduces keys derived by the original web client,
	// which salted with the account email.
	LegacyIterations = 1000

	// KDFSaltSize is the length of a server-issued per-account salt.
	KDFSaltSize = 16
)

// KeyDeriver turns a password and a salt into a SessionKey with
// PBKDF2-HMAC-SHA256.
//
// The zero value uses DefaultIterations. The iteration count is part of the
// account's KDF parameters: changing it changes every key.
type KeyDeriver struct {
	Iterations int

	// Hash overrides the PRF hash. Nil means SHA-256.
	Hash func() hash.Hash
}

// NewKeyDeriver returns a KeyDeriver with the given work factor.
// Non-positive values select DefaultIterations.
func NewKeyDeriver(iterations int) KeyDeriver {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return KeyDeriver{Iterations: iterations}
}

// DeriveKey is deterministic and total: any password and salt, including
// empty strings, yield a KeySize key.
func (d KeyDeriver) DeriveKey(password, salt string) SessionKey {
	iterations := d.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	h := d.Hash
	if h == nil {
		h = sha256.New
	}
	return pbkdf2.Key([]byte(password), []byte(salt), iterations, KeySize, h)
}

// LegacyKeys returns the keys the original web client may have derived for
// an account, most likely first. The web client salted PBKDF2 with the
// email at LegacyIterations; crypto-js hashes with SHA-256 since 4.2 and
// with SHA-1 before it.
func LegacyKeys(password, email string) []SessionKey {
	return []SessionKey{
		KeyDeriver{Iterations: LegacyIterations}.DeriveKey(password, email),
		KeyDeriver{Iterations: LegacyIterations, Hash: sha1.New}.DeriveKey(password, email),
	}
}

// NewKDFSalt returns KDFSaltSize random bytes in standard base64.
// The server issues one per account at signup.
func NewKDFSalt() (string, error) {
	return newKDFSalt(rand.Reader)
}

func newKDFSalt(r io.Reader) (string, error) {
	salt := make([]byte, KDFSaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}
