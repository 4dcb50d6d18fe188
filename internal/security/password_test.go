package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePassword_GeneratesSalt(t *testing.T) {
	digest, salt, err := DerivePassword("Sup3rSecret!", "")
	require.NoError(t, err)

	assert.Len(t, salt, SaltLength)
	assert.Len(t, digest, 64)
}

func TestDerivePassword_Deterministic(t *testing.T) {
	digest1, salt, err := DerivePassword("Sup3rSecret!", "")
	require.NoError(t, err)

	digest2, salt2, err := DerivePassword("Sup3rSecret!", salt)
	require.NoError(t, err)

	assert.Equal(t, salt, salt2)
	assert.Equal(t, digest1, digest2)
}

func TestDerivePassword_SaltChangesDigest(t *testing.T) {
	digest1, salt1, err := DerivePassword("Sup3rSecret!", "")
	require.NoError(t, err)

	digest2, salt2, err := DerivePassword("Sup3rSecret!", "")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, digest1, digest2)
}

func TestDerivePassword_EmptyPassword(t *testing.T) {
	_, _, err := DerivePassword("", "")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestDerivePassword_BadSalt(t *testing.T) {
	_, _, err := DerivePassword("Sup3rSecret!", "short")
	require.ErrorIs(t, err, ErrBadSaltLength)
}

func TestVerifyPassword(t *testing.T) {
	digest, salt, err := DerivePassword("Sup3rSecret!", "")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("Sup3rSecret!", digest, salt))
	assert.False(t, VerifyPassword("Sup3rSecret?", digest, salt))
	assert.False(t, VerifyPassword("", digest, salt))
	assert.False(t, VerifyPassword("Sup3rSecret!", digest, "bad salt"))
}
