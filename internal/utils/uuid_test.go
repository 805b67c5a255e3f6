package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceID(t *testing.T) {
	a, b := NewTraceID(), NewTraceID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestTraceIDOrNew(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		keep      bool
	}{
		{name: "uuid", candidate: "0192b8a4-7c3e-7d2a-9f11-5a1e2b3c4d5e", keep: true},
		{name: "short token", candidate: "req_42.retry", keep: true},
		{name: "empty", candidate: "", keep: false},
		{name: "too long", candidate: strings.Repeat("a", 65), keep: false},
		{name: "newline", candidate: "abc\ninjected", keep: false},
		{name: "space", candidate: "a b", keep: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TraceIDOrNew(tt.candidate)
			if tt.keep {
				assert.Equal(t, tt.candidate, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
