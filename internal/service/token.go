package service

import (
	"errors"
	"fmt"
	"time"

	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens carrying the subject and role.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg config.Auth) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

func (t *TokenService) Issue(subject string, role model.Role) (string, error) {
	if subject == "" {
		return "", validationError("subject is required")
	}
	now := t.now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenService) Verify(raw string) (Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	role := claims.Role
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	return Identity{Subject: claims.Subject, Role: role}, nil
}

type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	jwt.RegisteredClaims
}

// IdentityVerifier checks ID tokens signed by the upstream identity provider.
// A verified proof is the only way to obtain a session token.
type IdentityVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewIdentityVerifier(cfg config.Auth) *IdentityVerifier {
	return &IdentityVerifier{
		secret: []byte(cfg.ProviderSecret),
		issuer: cfg.ProviderIssuer,
		now:    time.Now,
	}
}

// Verify returns the normalized email asserted by a valid ID token.
func (v *IdentityVerifier) Verify(raw string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("%w: identity provider not configured", ErrInvalidToken)
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return "", fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}

	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return normalized, nil
}
