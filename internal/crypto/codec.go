// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
	"golang.org/x/crypto/hkdf"
)

// fieldKeyInfo domain-separates field subkeys from any other use of the
// session key.
const fieldKeyInfo = "secure-vault/field/v1"

// fieldCodec is the private implementation of [FieldCodec].
type fieldCodec struct {
	envelope EnvelopeType
	random   io.Reader
	logger   *logger.Logger
}

// CodecOption configures a FieldCodec.
type CodecOption func(*fieldCodec)

// WithEnvelope selects the envelope written by Encrypt. Both envelopes are
// always accepted by Decrypt and Open.
func WithEnvelope(t EnvelopeType) CodecOption {
	return func(c *fieldCodec) {
		c.envelope = t
	}
}

// WithRandom replaces crypto/rand as the source of salts and nonces.
func WithRandom(r io.Reader) CodecOption {
	return func(c *fieldCodec) {
		c.random = r
	}
}

// NewFieldCodec constructs a [FieldCodec] writing type 1 envelopes.
func NewFieldCodec(log *logger.Logger, opts ...CodecOption) FieldCodec {
	c := &fieldCodec{
		envelope: EnvelopeAESGCM,
		random:   rand.Reader,
		logger:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	return c
}

func (c *fieldCodec) Encrypt(plaintext *string, key SessionKey) (models.CipherString, error) {
	if plaintext == nil {
		return models.EmptyCipherString, nil
	}
	if err := key.validate(); err != nil {
		return "", err
	}

	if c.envelope == EnvelopeLegacy {
		return sealLegacy(c.random, []byte(*plaintext), key)
	}
	return c.sealGCM([]byte(*plaintext), key)
}

func (c *fieldCodec) sealGCM(plaintext []byte, key SessionKey) (models.CipherString, error) {
	env := gcmEnvelope{
		salt:  make([]byte, envelopeSaltSize),
		nonce: make([]byte, envelopeNonceSize),
	}
	if _, err := io.ReadFull(c.random, env.salt); err != nil {
		return "", fmt.Errorf("%w: salt: %w", ErrEntropy, err)
	}
	if _, err := io.ReadFull(c.random, env.nonce); err != nil {
		return "", fmt.Errorf("%w: nonce: %w", ErrEntropy, err)
	}

	aead, err := newFieldAEAD(key, env.salt)
	if err != nil {
		return "", err
	}

	// The header is authenticated so a body cannot be replayed under a
	// different envelope type.
	env.body = aead.Seal(nil, env.nonce, plaintext, []byte(gcmHeader))
	return env.encode(), nil
}

func openGCM(c models.CipherString, key SessionKey) ([]byte, error) {
	env, err := parseGCMEnvelope(c)
	if err != nil {
		return nil, err
	}

	aead, err := newFieldAEAD(key, env.salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, env.nonce, env.body, []byte(gcmHeader))
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// newFieldAEAD derives the per-message subkey HKDF-SHA256(key, salt) and
// returns AES-256-GCM keyed with it.
func newFieldAEAD(key SessionKey, salt []byte) (cipher.AEAD, error) {
	subkey := make([]byte, KeySize)
	defer clear(subkey)

	if _, err := io.ReadFull(hkdf.New(sha256.New, key, salt, []byte(fieldKeyInfo)), subkey); err != nil {
		return nil, fmt.Errorf("derive field key: %w", err)
	}

	block, err := aes.NewCipher(subkey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

func (c *fieldCodec) Decrypt(ciphertext models.CipherString, key SessionKey) string {
	res := c.Open(ciphertext, key)
	if res.Err != nil {
		envelope := "unknown"
		if t, err := DetectEnvelope(ciphertext); err == nil {
			envelope = t.String()
		}
		c.logger.Warn().
			Err(res.Err).
			Str("envelope", envelope).
			Int("length", len(ciphertext)).
			Msg("field could not be decrypted, substituting empty value")
		return ""
	}
	return res.Plaintext
}

func (c *fieldCodec) Open(ciphertext models.CipherString, key SessionKey) DecryptResult {
	if ciphertext.IsEmpty() {
		return DecryptResult{}
	}

	plaintext, err := open(ciphertext, key)
	if err != nil {
		return DecryptResult{Err: fmt.Errorf("%w: %w", ErrDecryptionFailed, err)}
	}
	return DecryptResult{Plaintext: plaintext}
}

func open(ciphertext models.CipherString, key SessionKey) (string, error) {
	if err := key.validate(); err != nil {
		return "", err
	}

	envelope, err := DetectEnvelope(ciphertext)
	if err != nil {
		return "", err
	}

	var raw []byte
	switch envelope {
	case EnvelopeLegacy:
		raw, err = openLegacy(ciphertext, key)
	default:
		raw, err = openGCM(ciphertext, key)
	}
	if err != nil {
		return "", err
	}

	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

func (c *fieldCodec) EncryptTags(tags []string, key SessionKey) ([]models.CipherString, error) {
	out := make([]models.CipherString, 0, len(tags))
	for i := range tags {
		ct, err := c.Encrypt(&tags[i], key)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", i, err)
		}
		out = append(out, ct)
	}
	return out, nil
}

func (c *fieldCodec) DecryptTags(tags []models.CipherString, key SessionKey) []DecryptResult {
	out := make([]DecryptResult, len(tags))
	for i, tag := range tags {
		out[i] = c.Open(tag, key)
	}
	return out
}
