// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// KeySize is the length of a SessionKey in bytes.
const KeySize = 32

// SessionKey is the 256-bit symmetric key derived from the user's password.
//
// It formats as a redacted placeholder and refuses JSON and text
// marshalling, so it cannot leak through logs or serialized state by
// accident.
type SessionKey []byte

// Hex returns the lowercase hex form of the key. The legacy envelope uses it
// as the OpenSSL passphrase.
func (k SessionKey) Hex() string {
	return hex.EncodeToString(k)
}

// Equal compares two keys in constant time.
func (k SessionKey) Equal(other SessionKey) bool {
	return len(k) == len(other) && subtle.ConstantTimeCompare(k, other) == 1
}

// Wipe zeroes the key in place.
func (k SessionKey) Wipe() {
	clear(k)
}

// String implements [fmt.Stringer].
func (k SessionKey) String() string {
	return "SessionKey(redacted)"
}

// GoString implements [fmt.GoStringer].
func (k SessionKey) GoString() string {
	return k.String()
}

// MarshalJSON always fails with ErrKeyNotSerializable.
func (k SessionKey) MarshalJSON() ([]byte, error) {
	return nil, ErrKeyNotSerializable
}

// MarshalText always fails with ErrKeyNotSerializable.
func (k SessionKey) MarshalText() ([]byte, error) {
	return nil, ErrKeyNotSerializable
}

func (k SessionKey) validate() error {
	if len(k) != KeySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(k), KeySize)
	}
	return nil
}
