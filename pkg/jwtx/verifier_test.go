package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/pkg/cryptox"
	"github.com/aussiebroadwan/renewal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "https://project.auth.example/auth/v1"
	testSubject = "6f1c1a32-5d0b-4b7e-9b55-3f7d2f1a9c10"
)

func newSigner(t *testing.T, alg, kid string) *jwtx.Signer {
	t.Helper()

	var (
		pemKey []byte
		err    error
	)
	switch alg {
	case jwtx.AlgEdDSA:
		pemKey, err = cryptox.GenerateEd25519Key()
	case jwtx.AlgES256:
		pemKey, err = cryptox.GenerateES256Key()
	case jwtx.AlgRS256:
		pemKey, err = cryptox.GenerateRSAKey(2048)
	}
	require.NoError(t, err)

	signer, err := jwtx.NewSigner(alg, kid, pemKey)
	require.NoError(t, err)
	return signer
}

func keySetFor(t *testing.T, signers ...*jwtx.Signer) *jwtx.KeySet {
	t.Helper()
	keys := jwtx.NewKeySet()
	for _, s := range signers {
		require.NoError(t, keys.AddJWK(s.PublicJWK()))
	}
	return keys
}

func TestSignAndVerify(t *testing.T) {
	for _, alg := range []string{jwtx.AlgEdDSA, jwtx.AlgES256, jwtx.AlgRS256} {
		t.Run(alg, func(t *testing.T) {
			signer := newSigner(t, alg, "kid-"+alg)
			require.Equal(t, alg, signer.Alg())

			claims := jwtx.NewClaims(testSubject, "user@example.com", 5*time.Minute, testIssuer,
				[]string{jwtx.DefaultAudience}, time.Now().UTC())
			token, err := signer.Sign(claims)
			require.NoError(t, err)

			verifier, err := jwtx.NewVerifier(alg, keySetFor(t, signer), testIssuer, []string{jwtx.DefaultAudience})
			require.NoError(t, err)

			got, err := verifier.Verify(token)
			require.NoError(t, err)
			require.Equal(t, testSubject, got.Subject)
			require.Equal(t, "user@example.com", got.Email)
			require.Equal(t, jwtx.DefaultAudience, got.Role)
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	signer := newSigner(t, jwtx.AlgEdDSA, "k1")
	keys := keySetFor(t, signer)
	now := time.Now().UTC()

	sign := func(c jwtx.Claims) string {
		token, err := signer.Sign(c)
		require.NoError(t, err)
		return token
	}
	valid := func() jwtx.Claims {
		return jwtx.NewClaims(testSubject, "", time.Minute, testIssuer, []string{jwtx.DefaultAudience}, now)
	}

	t.Run("wrong issuer", func(t *testing.T) {
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, "https://other.example", nil)
		require.NoError(t, err)
		_, err = v.Verify(sign(valid()))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, []string{"service_role"})
		require.NoError(t, err)
		_, err = v.Verify(sign(valid()))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, nil)
		require.NoError(t, err)
		c := jwtx.NewClaims(testSubject, "", time.Minute, testIssuer, nil, now.Add(-time.Hour))
		_, err = v.Verify(sign(c))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("missing expiry", func(t *testing.T) {
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, nil)
		require.NoError(t, err)
		c := valid()
		c.ExpiresAt = nil
		_, err = v.Verify(sign(c))
		require.ErrorIs(t, err, jwtx.ErrMissingExpiry)
	})

	t.Run("unknown kid", func(t *testing.T) {
		other := newSigner(t, jwtx.AlgEdDSA, "k2")
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, nil)
		require.NoError(t, err)
		token, err := other.Sign(valid())
		require.NoError(t, err)
		_, err = v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNoKey)
	})

	t.Run("algorithm mismatch", func(t *testing.T) {
		es := newSigner(t, jwtx.AlgES256, "k1")
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, nil)
		require.NoError(t, err)
		token, err := es.Sign(valid())
		require.NoError(t, err)
		_, err = v.Verify(token)
		require.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, nil)
		require.NoError(t, err)
		c := valid()
		c.Subject = ""
		_, err = v.Verify(sign(c))
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		v, err := jwtx.NewVerifier(jwtx.AlgEdDSA, keys, testIssuer, nil)
		require.NoError(t, err)
		_, err = v.Verify("not.a.jwt")
		require.Error(t, err)
	})
}

func TestNewVerifierUnsupportedAlg(t *testing.T) {
	_, err := jwtx.NewVerifier("HS256", jwtx.NewKeySet(), "", nil)
	require.ErrorIs(t, err, jwtx.ErrUnsupportedAlg)
}
