package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultNumKeys = 3
	maxNumKeys     = 10
	verifyLeeway   = 30 * time.Second
)

// Verifier validates a session token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer mints session tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// KeyRingOptions configures NewKeyRing.
type KeyRingOptions struct {
	// Issuer is enforced on Verify.
	Issuer string

	// NumKeys is clamped to [1, 10]; zero means 3.
	NumKeys int

	// Now overrides the clock for verification. Tests only.
	Now func() time.Time
}

type signingKey struct {
	kid  string
	priv ed25519.PrivateKey
}

// KeyRing holds ephemeral Ed25519 signing keys. Keys live only in memory, so
// every session is invalidated when the process restarts. Each Sign picks a
// key at random; Verify selects the key by the "kid" header.
type KeyRing struct {
	issuer string
	now    func() time.Time

	mu   sync.RWMutex
	keys []signingKey
	pub  map[string]ed25519.PublicKey
}

// NewKeyRing generates opts.NumKeys fresh keys.
func NewKeyRing(opts KeyRingOptions) (*KeyRing, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	n := opts.NumKeys
	if n <= 0 {
		n = defaultNumKeys
	}
	n = min(n, maxNumKeys)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	kr := &KeyRing{
		issuer: opts.Issuer,
		now:    now,
		pub:    make(map[string]ed25519.PublicKey, n),
	}
	for i := range n {
		if err := kr.Rotate(); err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}
	}
	return kr, nil
}

// Rotate adds a new signing key. Older keys keep verifying.
func (kr *KeyRing) Rotate() error {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return err
	}
	kid := "storefront-" + token

	kr.mu.Lock()
	defer kr.mu.Unlock()
	kr.keys = append(kr.keys, signingKey{kid: kid, priv: priv})
	kr.pub[kid] = pub
	return nil
}

// IsReady reports whether at least one signing key is loaded.
func (kr *KeyRing) IsReady() bool {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	return len(kr.keys) > 0
}

// Sign mints an EdDSA JWT with the "kid" header set.
func (kr *KeyRing) Sign(claims Claims) (string, error) {
	kr.mu.RLock()
	if len(kr.keys) == 0 {
		kr.mu.RUnlock()
		return "", errors.New("jwtx: no signing keys")
	}
	key := kr.keys[mrand.IntN(len(kr.keys))]
	kr.mu.RUnlock()

	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = key.kid
	return t.SignedString(key.priv)
}

// Verify checks the signature, issuer and validity window of raw.
func (kr *KeyRing) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		kr.mu.RLock()
		pub, ok := kr.pub[kid]
		kr.mu.RUnlock()
		if !ok {
			return nil, ErrUnknownKID
		}
		return pub, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownKID):
		return Claims{}, ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, ErrMalformed
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}

	if err := claims.validate(kr.issuer, kr.now(), verifyLeeway); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// PublicJWKS returns the verification keys for publishing.
func (kr *KeyRing) PublicJWKS() JWKS {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	set := JWKS{Keys: make([]JWK, 0, len(kr.keys))}
	for _, k := range kr.keys {
		set.Keys = append(set.Keys, NewEd25519JWK(k.kid, kr.pub[k.kid]))
	}
	return set
}
