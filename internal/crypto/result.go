package crypto

// DecryptResult is the outcome of opening one field.
// Err is nil on success and wraps ErrDecryptionFailed otherwise.
type DecryptResult struct {
	Plaintext string
	Err       error
}

// OK reports whether the field was opened.
func (r DecryptResult) OK() bool {
	return r.Err == nil
}

// ValueOr returns the plaintext, or fallback when the field failed.
func (r DecryptResult) ValueOr(fallback string) string {
	if r.Err != nil {
		return fallback
	}
	return r.Plaintext
}
