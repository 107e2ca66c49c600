package jwtverify

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
)

type Claims struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(r *http.Request) (string, bool) {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(raw, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func ParseToken(tokenString string, secret []byte, opts ...jwt.ParserOption) (Claims, error) {
	opts = append([]jwt.ParserOption{jwt.WithExpirationRequired()}, opts...)
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, commonerrors.ErrInvalidTokenSigningMethod
		}
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, commonerrors.ErrInvalidTokenSigningMethod) {
			return Claims{}, commonerrors.ErrInvalidTokenSigningMethod
		}
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, commonerrors.ErrInvalidTokenClaims
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}
	jti, _ := mapClaims["jti"].(string)

	claims := Claims{UserID: sub, JTI: jti}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
