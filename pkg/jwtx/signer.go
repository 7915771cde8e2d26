package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints tokens shaped like the provider's. The service never signs
// anything; this backs tests and the local dev token command.
type Signer struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
}

// NewSigner loads a PKCS8 PEM private key for alg.
func NewSigner(alg, kid string, pemKey []byte) (*Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM private key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	s := &Signer{kid: kid}
	switch alg {
	case AlgEdDSA:
		k, ok := priv.(ed25519.PrivateKey)
		if !ok {
			return nil, ErrKeyType
		}
		s.method, s.key = jwt.SigningMethodEdDSA, k
	case AlgES256:
		k, ok := priv.(*ecdsa.PrivateKey)
		if !ok {
			return nil, ErrKeyType
		}
		s.method, s.key = jwt.SigningMethodES256, k
	case AlgRS256:
		k, ok := priv.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrKeyType
		}
		s.method, s.key = jwt.SigningMethodRS256, k
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlg, alg)
	}
	return s, nil
}

func (s *Signer) Alg() string { return s.method.Alg() }
func (s *Signer) KID() string { return s.kid }

// Sign returns the compact serialization of claims with the kid header set.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK is the key a provider would publish for this signer.
func (s *Signer) PublicJWK() JWK {
	switch pub := s.key.Public().(type) {
	case ed25519.PublicKey:
		return NewEd25519JWK(s.kid, pub)
	case *ecdsa.PublicKey:
		return NewES256JWK(s.kid, pub)
	case *rsa.PublicKey:
		return NewRSAJWK(s.kid, pub)
	default:
		return JWK{}
	}
}
