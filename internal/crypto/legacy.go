package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/MKhiriev/secure-vault/models"
)

// OpenSSL enc layout: "Salted__" || salt(8) || AES-256-CBC(PKCS#7).
const (
	legacyMagic    = "Salted__"
	legacySaltSize = 8
	legacyKeySize  = 32
)

func sealLegacy(r io.Reader, plaintext []byte, key SessionKey) (models.CipherString, error) {
	salt := make([]byte, legacySaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", fmt.Errorf("%w: salt: %w", ErrEntropy, err)
	}

	aesKey, iv := evpBytesToKey([]byte(key.Hex()), salt, legacyKeySize, aes.BlockSize)
	defer clear(aesKey)

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(padded, padded)

	blob := make([]byte, 0, len(legacyMagic)+legacySaltSize+len(padded))
	blob = append(blob, legacyMagic...)
	blob = append(blob, salt...)
	blob = append(blob, padded...)
	return models.CipherString(base64.StdEncoding.EncodeToString(blob)), nil
}

func openLegacy(c models.CipherString, key SessionKey) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(string(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	header := len(legacyMagic) + legacySaltSize
	if len(raw) < header+aes.BlockSize || !bytes.HasPrefix(raw, []byte(legacyMagic)) {
		return nil, fmt.Errorf("%w: short or missing header", ErrMalformedEnvelope)
	}
	salt, body := raw[len(legacyMagic):header], raw[header:]
	if len(body)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: body is not block aligned", ErrMalformedEnvelope)
	}

	aesKey, iv := evpBytesToKey([]byte(key.Hex()), salt, legacyKeySize, aes.BlockSize)
	defer clear(aesKey)

	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	out := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, body)
	return pkcs7Unpad(out, aes.BlockSize)
}

// evpBytesToKey is OpenSSL's EVP_BytesToKey with MD5 and one iteration:
// D_i = MD5(D_{i-1} || passphrase || salt), concatenated until keyLen+ivLen.
func evpBytesToKey(passphrase, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var out, prev []byte
	for len(out) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		out = append(out, prev...)
	}
	return out[:keyLen], out[keyLen : keyLen+ivLen]
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, ErrBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, ErrBadPadding
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, ErrBadPadding
		}
	}
	return b[:len(b)-n], nil
}
