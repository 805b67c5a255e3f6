package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient("http://localhost:8080", 3*time.Second)
	require.NotNil(t, client)
	require.NotNil(t, client.Client)

	assert.Equal(t, "http://localhost:8080", client.BaseURL)
	assert.Equal(t, "application/json", client.Header.Get("Accept"))
}

func TestNewHTTPClient_Independence(t *testing.T) {
	a := NewHTTPClient("http://a", time.Second)
	b := NewHTTPClient("http://b", time.Second)
	assert.NotSame(t, a.Client, b.Client)
}

func TestNewHTTPClient_Roundtrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		_, _ = WriteJSON(w, map[string]string{"version": "1.0.0"}, http.StatusOK)
	}))
	defer srv.Close()

	var out struct {
		Version string `json:"version"`
	}
	resp, err := NewHTTPClient(srv.URL, time.Second).R().SetResult(&out).Get("/api/version")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "1.0.0", out.Version)
}
