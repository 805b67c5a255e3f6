package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MKhiriev/secure-vault/models"
)

// EnvelopeType identifies the layout of a cipher string.
type EnvelopeType int

const (
	// EnvelopeLegacy is the OpenSSL "Salted__" format of the original
	// web client.
	EnvelopeLegacy EnvelopeType = 0

	// EnvelopeAESGCM is the default format: AES-256-GCM under a per-message
	// HKDF-SHA256 subkey.
	EnvelopeAESGCM EnvelopeType = 1
)

// String implements [fmt.Stringer].
func (t EnvelopeType) String() string {
	switch t {
	case EnvelopeLegacy:
		return "legacy"
	case EnvelopeAESGCM:
		return "aes-gcm"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

const (
	gcmHeader    = "1."
	gcmSeparator = "|"

	// base64 of "Salted__"
	legacyPrefix = "U2FsdGVkX1"

	envelopeSaltSize  = 16
	envelopeNonceSize = 12
	gcmTagSize        = 16
)

// DetectEnvelope reports which envelope c uses, judging by its prefix only.
func DetectEnvelope(c models.CipherString) (EnvelopeType, error) {
	s := string(c)
	switch {
	case strings.HasPrefix(s, gcmHeader):
		return EnvelopeAESGCM, nil
	case strings.HasPrefix(s, legacyPrefix):
		return EnvelopeLegacy, nil
	default:
		return 0, ErrUnsupportedEnvelope
	}
}

// gcmEnvelope is the parsed form of a type 1 cipher string.
type gcmEnvelope struct {
	salt  []byte
	nonce []byte
	body  []byte // ciphertext || tag
}

func (e gcmEnvelope) encode() models.CipherString {
	enc := base64.StdEncoding
	return models.CipherString(gcmHeader +
		enc.EncodeToString(e.salt) + gcmSeparator +
		enc.EncodeToString(e.nonce) + gcmSeparator +
		enc.EncodeToString(e.body))
}

func parseGCMEnvelope(c models.CipherString) (gcmEnvelope, error) {
	rest, ok := strings.CutPrefix(string(c), gcmHeader)
	if !ok {
		return gcmEnvelope{}, ErrUnsupportedEnvelope
	}

	parts := strings.Split(rest, gcmSeparator)
	if len(parts) != 3 {
		return gcmEnvelope{}, fmt.Errorf("%w: want 3 components, got %d", ErrMalformedEnvelope, len(parts))
	}

	var decoded [3][]byte
	for i, part := range parts {
		b, err := base64.StdEncoding.DecodeString(part)
		if err != nil {
			return gcmEnvelope{}, fmt.Errorf("%w: component %d: %w", ErrMalformedEnvelope, i, err)
		}
		decoded[i] = b
	}

	e := gcmEnvelope{salt: decoded[0], nonce: decoded[1], body: decoded[2]}
	switch {
	case len(e.salt) != envelopeSaltSize:
		return gcmEnvelope{}, fmt.Errorf("%w: salt is %d bytes", ErrMalformedEnvelope, len(e.salt))
	case len(e.nonce) != envelopeNonceSize:
		return gcmEnvelope{}, fmt.Errorf("%w: nonce is %d bytes", ErrMalformedEnvelope, len(e.nonce))
	case len(e.body) < gcmTagSize:
		return gcmEnvelope{}, fmt.Errorf("%w: body shorter than tag", ErrMalformedEnvelope)
	}

	return e, nil
}
