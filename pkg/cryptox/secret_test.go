package cryptox_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/renewal/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := cryptox.HashSecret("scheduler-secret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.Len(t, strings.Split(hash, "$"), 6)

	require.NoError(t, cryptox.VerifySecret("scheduler-secret", hash))
	require.ErrorIs(t, cryptox.VerifySecret("wrong", hash), cryptox.ErrSecretMismatch)
}

func TestHashSecretUsesFreshSalt(t *testing.T) {
	a, err := cryptox.HashSecret("same")
	require.NoError(t, err)
	b, err := cryptox.HashSecret("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifySecretRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plain-text",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		require.ErrorIs(t, cryptox.VerifySecret("x", encoded), cryptox.ErrInvalidHash, "hash %q", encoded)
	}
}
