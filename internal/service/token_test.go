package service

import (
	"testing"
	"time"

	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenService {
	return NewTokenService(config.Auth{JWTSecret: "s3cret", Issuer: "test", TokenTTL: time.Hour})
}

const (
	providerSecret = "upstream"
	providerIssuer = "idp"
)

func newTestIdentities() *IdentityVerifier {
	return NewIdentityVerifier(config.Auth{ProviderSecret: providerSecret, ProviderIssuer: providerIssuer})
}

// idToken signs an identity provider ID token for email.
func idToken(t *testing.T, secret, email string, extra jwt.MapClaims) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":   providerIssuer,
		"sub":   "provider-user-1",
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range extra {
		if v == nil {
			delete(claims, k)
			continue
		}
		claims[k] = v
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := newTestTokens()

	raw, err := tokens.Issue(ann, model.RoleAdmin)
	require.NoError(t, err)

	id, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, ann, id.Subject)
	assert.True(t, id.IsAdmin())
}

func TestTokenService_Rejects(t *testing.T) {
	tokens := newTestTokens()

	other := NewTokenService(config.Auth{JWTSecret: "other", Issuer: "test", TokenTTL: time.Hour})
	foreign, err := other.Issue(ann, model.RoleUser)
	require.NoError(t, err)

	expiredIssuer := newTestTokens()
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue(ann, model.RoleUser)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": ann,
		"iss": "test",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":   "not-a-token",
		"wrong key": foreign,
		"expired":   expired,
		"alg none":  unsigned,
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_UnknownRoleIsUser(t *testing.T) {
	tokens := newTestTokens()
	raw, err := tokens.Issue(ann, model.Role("superuser"))
	require.NoError(t, err)

	id, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, id.Role)
}

func TestIdentityVerifier(t *testing.T) {
	identities := newTestIdentities()

	email, err := identities.Verify(idToken(t, providerSecret, " Ann@Example.com ", nil))
	require.NoError(t, err)
	assert.Equal(t, ann, email)

	email, err = identities.Verify(idToken(t, providerSecret, ann, jwt.MapClaims{"email_verified": true}))
	require.NoError(t, err)
	assert.Equal(t, ann, email)

	session, err := newTestTokens().Issue(ann, model.RoleAdmin)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"empty":           "",
		"wrong key":       idToken(t, "s3cret", ann, nil),
		"session token":   session,
		"wrong issuer":    idToken(t, providerSecret, ann, jwt.MapClaims{"iss": "test"}),
		"expired":         idToken(t, providerSecret, ann, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()}),
		"no expiry":       idToken(t, providerSecret, ann, jwt.MapClaims{"exp": nil}),
		"unverified":      idToken(t, providerSecret, ann, jwt.MapClaims{"email_verified": false}),
		"malformed email": idToken(t, providerSecret, "ann", nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := identities.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	unconfigured := NewIdentityVerifier(config.Auth{})
	_, err = unconfigured.Verify(idToken(t, "", ann, nil))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
