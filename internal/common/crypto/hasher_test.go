package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_HashAndCompare(t *testing.T) {
	h := NewArgon2Hasher()

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	require.NotContains(t, hash, "password123")

	require.NoError(t, h.Compare(hash, "password123"))
	require.Error(t, h.Compare(hash, "password124"))
}

func TestArgon2Hasher_SaltIsPerHash(t *testing.T) {
	h := NewArgon2Hasher()

	first, err := h.Hash("password123")
	require.NoError(t, err)
	second, err := h.Hash("password123")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, h.Compare(first, "password123"))
	require.NoError(t, h.Compare(second, "password123"))
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	h := NewArgon2Hasher()

	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=1$!!!$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
	} {
		require.ErrorIs(t, h.Compare(hash, "password123"), ErrInvalidHash, "hash %q", hash)
	}
}
