package crypto

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_WithKey(t *testing.T) {
	want := testKey(t, "pw", "alice@example.com")

	s, err := NewSession(7, "alice@example.com", testKey(t, "pw", "alice@example.com"))
	require.NoError(t, err)
	defer s.Destroy()

	assert.Equal(t, int64(7), s.UserID())
	assert.Equal(t, "alice@example.com", s.Email())
	assert.False(t, s.Closed())

	err = s.WithKey(func(k SessionKey) error {
		assert.True(t, want.Equal(k))
		return nil
	})
	require.NoError(t, err)
}

func TestSession_WipesSourceKey(t *testing.T) {
	key := testKey(t, "pw", "salt")

	s, err := NewSession(1, "a@b.c", key)
	require.NoError(t, err)
	defer s.Destroy()

	assert.Equal(t, make([]byte, KeySize), []byte(key))
}

func TestSession_InvalidKey(t *testing.T) {
	_, err := NewSession(1, "a@b.c", SessionKey("too short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestSession_Destroy(t *testing.T) {
	s, err := NewSession(1, "a@b.c", testKey(t, "pw", "salt"))
	require.NoError(t, err)

	s.Destroy()
	s.Destroy()

	assert.True(t, s.Closed())

	called := false
	err = s.WithKey(func(SessionKey) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.False(t, called)
}

func TestSession_PropagatesCallbackError(t *testing.T) {
	s, err := NewSession(1, "a@b.c", testKey(t, "pw", "salt"))
	require.NoError(t, err)
	defer s.Destroy()

	err = s.WithKey(func(SessionKey) error {
		return ErrDecryptionFailed
	})
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSession_WithLegacyKeys(t *testing.T) {
	legacy := LegacyKeys("pw", "alice@example.com")
	want := LegacyKeys("pw", "alice@example.com")

	s, err := NewSession(1, "alice@example.com", testKey(t, "pw", "server-salt"), WithLegacyKeys(legacy...))
	require.NoError(t, err)
	defer s.Destroy()

	for _, k := range legacy {
		assert.Equal(t, make([]byte, KeySize), []byte(k), "source keys are wiped")
	}

	err = s.WithLegacyKeys(func(key SessionKey, got []SessionKey) error {
		assert.True(t, testKey(t, "pw", "server-salt").Equal(key))
		require.Len(t, got, len(want))
		for i := range got {
			assert.True(t, want[i].Equal(got[i]))
		}
		return nil
	})
	require.NoError(t, err)

	s.Destroy()
	assert.ErrorIs(t, s.WithLegacyKeys(func(SessionKey, []SessionKey) error { return nil }), ErrSessionClosed)
}

func TestSession_WithoutLegacyKeys(t *testing.T) {
	s, err := NewSession(1, "a@b.c", testKey(t, "pw", "salt"))
	require.NoError(t, err)
	defer s.Destroy()

	err = s.WithLegacyKeys(func(key SessionKey, legacy []SessionKey) error {
		assert.Len(t, key, KeySize)
		assert.Nil(t, legacy)
		return nil
	})
	require.NoError(t, err)
}

func TestSession_InvalidLegacyKey(t *testing.T) {
	_, err := NewSession(1, "a@b.c", testKey(t, "pw", "salt"), WithLegacyKeys(SessionKey("short")))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestSession_RefusesJSON(t *testing.T) {
	s, err := NewSession(1, "a@b.c", testKey(t, "pw", "salt"))
	require.NoError(t, err)
	defer s.Destroy()

	_, err = json.Marshal(s)
	assert.ErrorIs(t, err, ErrKeyNotSerializable)
}

func TestSession_ConcurrentUseAndDestroy(t *testing.T) {
	codec := NewFieldCodec(logger.Nop())
	s, err := NewSession(1, "a@b.c", testKey(t, "pw", "salt"))
	require.NoError(t, err)

	var (
		wg     sync.WaitGroup
		ok     atomic.Int32
		closed atomic.Int32
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithKey(func(k SessionKey) error {
				ct, err := codec.Encrypt(ptr("value"), k)
				if err != nil {
					return err
				}
				assert.Equal(t, "value", codec.Decrypt(ct, k))
				return nil
			})
			switch err {
			case nil:
				ok.Add(1)
			case ErrSessionClosed:
				closed.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Destroy()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(32), ok.Load()+closed.Load())
	assert.True(t, s.Closed())
}
