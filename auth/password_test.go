package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	require.NotEqual(t, "motdepasse123", digest)

	assert.True(t, CheckPassword("motdepasse123", digest))
	assert.False(t, CheckPassword("mauvais", digest))
}

func TestHashPasswordSale(t *testing.T) {
	a, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	b, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	// bcrypt sale chaque condensé : deux appels ne coïncident jamais.
	assert.NotEqual(t, a, b)
}

func TestCheckPasswordDigestMalforme(t *testing.T) {
	assert.False(t, CheckPassword("motdepasse123", ""))
	assert.False(t, CheckPassword("motdepasse123", "pas-un-digest"))
	assert.False(t, CheckPassword("motdepasse123", "motdepasse123"))
}
