package jwtx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newRing(t *testing.T, now func() time.Time) *jwtx.KeyRing {
	t.Helper()
	kr, err := jwtx.NewKeyRing(jwtx.KeyRingOptions{Issuer: "storefront-test", NumKeys: 2, Now: now})
	require.NoError(t, err)
	return kr
}

func subject() jwtx.SessionSubject {
	return jwtx.SessionSubject{
		UserID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV",
		Email:  "user@example.com",
		Name:   "User",
		Admin:  true,
		AMR:    []string{jwtx.AMRPassword, jwtx.AMROTP},
	}
}

func TestKeyRing_SignVerify(t *testing.T) {
	kr := newRing(t, nil)
	require.True(t, kr.IsReady())

	token, err := kr.Sign(jwtx.NewSessionClaims(subject(), "storefront-test", time.Hour, time.Now()))
	require.NoError(t, err)

	claims, err := kr.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", claims.Subject)
	require.Equal(t, "user@example.com", claims.Email)
	require.True(t, claims.Admin)
	require.True(t, claims.HasAMR(jwtx.AMROTP))
	require.NotEmpty(t, claims.ID)
}

func TestKeyRing_Rejects(t *testing.T) {
	now := time.Now()
	kr := newRing(t, func() time.Time { return now })

	t.Run("expired", func(t *testing.T) {
		token, err := kr.Sign(jwtx.NewSessionClaims(subject(), "storefront-test", time.Minute, now.Add(-2*time.Hour)))
		require.NoError(t, err)
		_, err = kr.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		token, err := kr.Sign(jwtx.NewSessionClaims(subject(), "storefront-test", time.Hour, now.Add(time.Hour)))
		require.NoError(t, err)
		_, err = kr.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := kr.Sign(jwtx.NewSessionClaims(subject(), "someone-else", time.Hour, now))
		require.NoError(t, err)
		_, err = kr.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("foreign key", func(t *testing.T) {
		other := newRing(t, nil)
		token, err := other.Sign(jwtx.NewSessionClaims(subject(), "storefront-test", time.Hour, now))
		require.NoError(t, err)
		_, err = kr.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := kr.Sign(jwtx.NewSessionClaims(subject(), "storefront-test", time.Hour, now))
		require.NoError(t, err)
		parts := strings.Split(token, ".")
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"someone","iss":"storefront-test","admin":true}`))
		_, err = kr.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := kr.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestKeyRing_RotateAndJWKS(t *testing.T) {
	kr := newRing(t, nil)
	old, err := kr.Sign(jwtx.NewSessionClaims(subject(), "storefront-test", time.Hour, time.Now()))
	require.NoError(t, err)

	require.NoError(t, kr.Rotate())

	jwks := kr.PublicJWKS()
	require.Len(t, jwks.Keys, 3)
	for _, k := range jwks.Keys {
		require.Equal(t, "OKP", k.Kty)
		require.Equal(t, "Ed25519", k.Crv)
		require.True(t, strings.HasPrefix(k.Kid, "storefront-"))
	}

	_, err = kr.Verify(old)
	require.NoError(t, err)
}

func TestNewKeyRing_RequiresIssuer(t *testing.T) {
	_, err := jwtx.NewKeyRing(jwtx.KeyRingOptions{})
	require.Error(t, err)
}
