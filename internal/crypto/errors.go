package crypto

import "errors"

var (
	// ErrDecryptionFailed wraps every reason a cipher string could not be
	// opened: malformed envelope, wrong key, tampering, non-UTF-8 plaintext.
	ErrDecryptionFailed = errors.New("decryption failed")

	ErrInvalidKey          = errors.New("invalid session key")
	ErrMalformedEnvelope   = errors.New("malformed cipher string")
	ErrUnsupportedEnvelope = errors.New("unsupported cipher string envelope")
	ErrAuthentication      = errors.New("message authentication failed")
	ErrBadPadding          = errors.New("invalid block padding")
	ErrInvalidUTF8         = errors.New("plaintext is not valid UTF-8")

	// ErrEntropy is returned when the random source cannot supply a salt or
	// nonce. The caller must abort the save.
	ErrEntropy = errors.New("random source failure")

	ErrSessionClosed      = errors.New("session is closed")
	ErrNoLegacyKeys       = errors.New("session has no web client keys")
	ErrKeyNotSerializable = errors.New("session key must not be serialized")
)
