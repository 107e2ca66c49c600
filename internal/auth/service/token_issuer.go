package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/onion-recipes/internal/common/crypto"
	"github.com/AlibekovAA/onion-recipes/internal/common/jwtverify"
)

type TokenIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

// Issue signs an HS256 access token whose subject is userID and returns it
// together with its jti.
func (ti *TokenIssuer) Issue(userID string) (string, string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", "", err
	}

	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"exp": now.Add(ti.accessTokenTTL).Unix(),
		"iat": now.Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return "", "", err
	}

	incrementAccessTokensIssued()
	return tokenString, jti, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret, jwt.WithTimeFunc(ti.clock.Now))
}
