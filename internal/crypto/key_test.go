package crypto

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey_NeverPrinted(t *testing.T) {
	key := NewKeyDeriver(LegacyIterations).DeriveKey("pw", "salt")

	for _, format := range []string{"%v", "%s", "%+v", "%#v", "%x"} {
		assert.NotContains(t, fmt.Sprintf(format, key), key.Hex(), format)
	}
}

func TestSessionKey_RefusesSerialization(t *testing.T) {
	key := NewKeyDeriver(LegacyIterations).DeriveKey("pw", "salt")

	_, err := json.Marshal(key)
	require.ErrorIs(t, err, ErrKeyNotSerializable)

	_, err = json.Marshal(struct{ K SessionKey }{K: key})
	require.ErrorIs(t, err, ErrKeyNotSerializable)
}

func TestSessionKey_Wipe(t *testing.T) {
	key := NewKeyDeriver(LegacyIterations).DeriveKey("pw", "salt")
	key.Wipe()

	assert.Equal(t, make([]byte, KeySize), []byte(key))
}

func TestSessionKey_Validate(t *testing.T) {
	assert.ErrorIs(t, SessionKey(nil).validate(), ErrInvalidKey)
	assert.ErrorIs(t, SessionKey(make([]byte, 16)).validate(), ErrInvalidKey)
	assert.NoError(t, SessionKey(make([]byte, KeySize)).validate())
}
