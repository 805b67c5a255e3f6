// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the client-side cryptographic core of
// secure-vault.
//
// The server never sees plaintext or keys. A client turns the user's
// password into a 256-bit [SessionKey] with [KeyDeriver], keeps that key in
// a [Session] for the lifetime of a login, and uses a [FieldCodec] to turn
// every user-supplied field into a self-describing
// [github.com/MKhiriev/secure-vault/models.CipherString] and back.
//
// Cipher string envelopes:
//
//	1.<b64 salt>|<b64 nonce>|<b64 ciphertext||tag>   AES-256-GCM, HKDF-SHA256 subkey per message
//	U2FsdGVkX1...                                    OpenSSL "Salted__", AES-256-CBC, EVP_BytesToKey(MD5)
//
// The second form is what the original web client produced. It is always
// readable and is written only when a codec is built with
// WithEnvelope(EnvelopeLegacy).
package crypto
