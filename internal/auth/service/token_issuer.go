package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sitehost/internal/common/clock"
	"sitehost/internal/common/jwtverify"
	"sitehost/internal/observability/metrics"
	userdomain "sitehost/internal/user/domain"
)

// TokenIssuer signs bearer tokens carrying the identity claims and an
// absolute expiry. Tokens stay valid for their full lifetime; there is
// no revocation list.
type TokenIssuer struct {
	jwtSecret []byte
	clock     clock.Clock
	tokenTTL  time.Duration
}

func NewTokenIssuer(jwtSecret string, tokenTTL time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: []byte(jwtSecret),
		clock:     clock,
		tokenTTL:  tokenTTL,
	}
}

func (ti *TokenIssuer) Issue(user userdomain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub":   string(user.ID),
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(ti.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) Parse(tokenString string) (jwtverify.Claims, error) {
	claims, err := jwtverify.ParseToken(tokenString, ti.jwtSecret)
	if err != nil {
		metrics.TokenVerifyFailures.Inc()
		return jwtverify.Claims{}, ErrInvalidToken.WithCause(err)
	}
	return claims, nil
}
