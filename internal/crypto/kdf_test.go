package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDeriver_KnownAnswers(t *testing.T) {
	tests := []struct {
		name       string
		iterations int
		password   string
		salt       string
		wantHex    string
	}{
		{
			name:       "legacy email salt",
			iterations: LegacyIterations,
			password:   "Tr0ub4dor&3",
			salt:       "alice@example.com",
			wantHex:    "f7969bdb54be7b087dc680a6391f6c0d94278d54245a53394152bbb84b464a49",
		},
		{
			name:       "rfc 7914 style vector",
			iterations: 1,
			password:   "password",
			salt:       "salt",
			wantHex:    "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b",
		},
		{
			name:       "empty password and salt",
			iterations: LegacyIterations,
			password:   "",
			salt:       "",
			wantHex:    "4fc58a21c100ce1835b8f9991d738b56965d14b24e1761fbdffc69ac5e0b667a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKeyDeriver(tt.iterations).DeriveKey(tt.password, tt.salt)
			require.Len(t, key, KeySize)
			assert.Equal(t, tt.wantHex, key.Hex())
		})
	}
}

func TestKeyDeriver_DefaultIterations(t *testing.T) {
	if testing.Short() {
		t.Skip("600k PBKDF2 iterations")
	}

	want := "48c4a0b8ac3605b9ac84924025457a0e7bcd5fbcac4c05b8a848746f83593bde"

	assert.Equal(t, want, KeyDeriver{}.DeriveKey("Tr0ub4dor&3", "alice@example.com").Hex())
	assert.Equal(t, DefaultIterations, NewKeyDeriver(0).Iterations)
	assert.Equal(t, DefaultIterations, NewKeyDeriver(-5).Iterations)
}

func TestKeyDeriver_Determinism(t *testing.T) {
	d := NewKeyDeriver(LegacyIterations)

	k1 := d.DeriveKey("correct horse battery staple", "alice@example.com")
	k2 := d.DeriveKey("correct horse battery staple", "alice@example.com")

	assert.True(t, k1.Equal(k2))
}

func TestKeyDeriver_KeySensitivity(t *testing.T) {
	d := NewKeyDeriver(LegacyIterations)
	base := d.DeriveKey("pw", "alice@example.com")

	assert.False(t, base.Equal(d.DeriveKey("pw2", "alice@example.com")), "password change")
	assert.False(t, base.Equal(d.DeriveKey("pw", "bob@example.com")), "salt change")
	assert.False(t, base.Equal(NewKeyDeriver(LegacyIterations+1).DeriveKey("pw", "alice@example.com")), "iteration change")
}

func TestLegacyKeys(t *testing.T) {
	keys := LegacyKeys("Tr0ub4dor&3", "alice@example.com")
	require.Len(t, keys, 2)

	// crypto-js 4.2+ (HMAC-SHA256) first, older crypto-js (HMAC-SHA1) second.
	assert.Equal(t, "f7969bdb54be7b087dc680a6391f6c0d94278d54245a53394152bbb84b464a49", keys[0].Hex())
	assert.Equal(t, "01fdf546a78ebfe4cfb437879b26672c3f09512b372432be90d833a0e4a44211", keys[1].Hex())
}

func TestKeyDeriver_Hash(t *testing.T) {
	d := KeyDeriver{Iterations: LegacyIterations}
	explicit := KeyDeriver{Iterations: LegacyIterations, Hash: sha256.New}

	assert.True(t, d.DeriveKey("pw", "salt").Equal(explicit.DeriveKey("pw", "salt")), "nil hash is SHA-256")
	assert.False(t, d.DeriveKey("pw", "salt").Equal(KeyDeriver{Iterations: LegacyIterations, Hash: sha1.New}.DeriveKey("pw", "salt")))
}

func TestNewKDFSalt(t *testing.T) {
	s1, err := NewKDFSalt()
	require.NoError(t, err)
	s2, err := NewKDFSalt()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s1)
	require.NoError(t, err)
	assert.Len(t, raw, KDFSaltSize)
	assert.NotEqual(t, s1, s2)
}

func TestNewKDFSalt_EntropyFailure(t *testing.T) {
	_, err := newKDFSalt(failingReader{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEntropy))
}
