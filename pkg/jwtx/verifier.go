package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrUnsupportedAlg = errors.New("jwtx: unsupported algorithm")
	ErrMissingKID     = errors.New("jwtx: missing kid")
	ErrKeyType        = errors.New("jwtx: key type does not match algorithm")

	ErrIssuer        = errors.New("jwtx: issuer mismatch")
	ErrAudience      = errors.New("jwtx: audience mismatch")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrNotYetValid   = errors.New("jwtx: token not yet valid")
	ErrMissingExpiry = errors.New("jwtx: token has no expiry")
	ErrInvalid       = errors.New("jwtx: invalid token")
)

// DefaultLeeway absorbs clock skew between us and the provider.
const DefaultLeeway = 30 * time.Second

// Supported algorithms.
const (
	AlgEdDSA = "EdDSA"
	AlgES256 = "ES256"
	AlgRS256 = "RS256"
)

// KeyVerifier checks tokens signed with one algorithm against a KeySet.
type KeyVerifier struct {
	alg    string
	keys   *KeySet
	issuer string
	aud    []string
	leeway time.Duration
	now    func() time.Time
}

// NewVerifier returns a verifier for alg ("EdDSA", "ES256" or "RS256").
// An empty issuer or audience disables that check.
func NewVerifier(alg string, keys *KeySet, issuer string, audience []string) (*KeyVerifier, error) {
	switch alg {
	case AlgEdDSA, AlgES256, AlgRS256:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	return &KeyVerifier{
		alg:    alg,
		keys:   keys,
		issuer: issuer,
		aud:    audience,
		leeway: DefaultLeeway,
		now:    time.Now,
	}, nil
}

func (v *KeyVerifier) Alg() string { return v.alg }

// Verify parses and validates tokenStr.
func (v *KeyVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.alg}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, v.lookupKey)
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalid
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.now().UTC(), v.leeway); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalid)
	}

	return *claims, nil
}

func (v *KeyVerifier) lookupKey(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, ErrMissingKID
	}

	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, err)
	}

	switch v.alg {
	case AlgEdDSA:
		if k, ok := pub.(ed25519.PublicKey); ok {
			return k, nil
		}
	case AlgES256:
		if k, ok := pub.(*ecdsa.PublicKey); ok {
			return k, nil
		}
	case AlgRS256:
		if k, ok := pub.(*rsa.PublicKey); ok {
			return k, nil
		}
	}
	return nil, ErrKeyType
}
