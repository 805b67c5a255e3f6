package utils

import "github.com/google/uuid"

// maxTraceIDLength bounds a client-supplied trace id.
const maxTraceIDLength = 64

// NewTraceID returns a UUIDv7 string, or a random UUIDv4 if the clock
// source fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// TraceIDOrNew returns candidate when it is a usable trace id and a fresh
// one otherwise. Usable ids are short and consist of letters, digits, '-',
// '_' and '.', so they can go into logs and headers unescaped.
func TraceIDOrNew(candidate string) string {
	if candidate == "" || len(candidate) > maxTraceIDLength {
		return NewTraceID()
	}
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return NewTraceID()
		}
	}
	return candidate
}
