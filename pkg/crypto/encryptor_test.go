package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncryptor_GenerateNewKey(t *testing.T) {
	enc, err := NewEncryptor("")
	require.NoError(t, err)
	assert.NotNil(t, enc.identity)
	assert.NotNil(t, enc.recipient)
}

func TestNewEncryptor_InvalidKey(t *testing.T) {
	_, err := NewEncryptor("invalid-key-format")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing identity")
}

func TestGenerateKey_Unique(t *testing.T) {
	key1, err := GenerateKey()
	require.NoError(t, err)
	key2, err := GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestEncryptString_RoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	enc, err := NewEncryptor(key)
	require.NoError(t, err)

	sealed, err := enc.EncryptString("gho_accesstoken")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "gho_accesstoken")

	// A second encryptor built from the same key can open it.
	other, err := NewEncryptor(key)
	require.NoError(t, err)
	plain, err := other.DecryptString(sealed)
	require.NoError(t, err)
	assert.Equal(t, "gho_accesstoken", plain)
}

func TestEncryptString_DifferentOutputEachTime(t *testing.T) {
	enc, err := NewEncryptor("")
	require.NoError(t, err)

	a, err := enc.EncryptString("same")
	require.NoError(t, err)
	b, err := enc.EncryptString("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptString_WrongKey(t *testing.T) {
	enc1, err := NewEncryptor("")
	require.NoError(t, err)
	enc2, err := NewEncryptor("")
	require.NoError(t, err)

	sealed, err := enc1.EncryptString("secret")
	require.NoError(t, err)

	_, err = enc2.DecryptString(sealed)
	assert.Error(t, err)

	_, err = enc1.DecryptString("not base64!!")
	assert.Error(t, err)
}
