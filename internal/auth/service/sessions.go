package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/onion-recipes/internal/auth/domain"
	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/common/jwtverify"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
)

// FakeSessions fabricates example callers, valid with a fixed probability.
type FakeSessions struct {
	gen       *fakedata.Generator
	validRate float64
	log       *logger.Logger
}

func NewFakeSessions(gen *fakedata.Generator, validRate float64, log *logger.Logger) *FakeSessions {
	return &FakeSessions{gen: gen, validRate: validRate, log: log}
}

func (s *FakeSessions) New(ctx context.Context) domain.Session {
	session := domain.Session{
		Token:  s.gen.JWT(),
		UserID: string(s.gen.UserID()),
		Valid:  s.gen.Chance(s.validRate),
	}
	s.log.WithFields(ctx, logger.Fields{
		"action":  "fake_session",
		"user_id": session.UserID,
		"valid":   session.Valid,
	}).Debugf("jwt: %s", session.Token)
	recordSessionResolved("fake", session.Valid)
	return session
}

// JWTSessions turns bearer tokens into sessions. Verification failures
// produce an invalid session, not an error.
type JWTSessions struct {
	secret []byte
	clock  clock.Clock
	log    *logger.Logger
}

func NewJWTSessions(secret string, clk clock.Clock, log *logger.Logger) *JWTSessions {
	return &JWTSessions{secret: []byte(secret), clock: clk, log: log}
}

func (s *JWTSessions) FromToken(ctx context.Context, token string) domain.Session {
	session := domain.Session{Token: token}

	claims, err := jwtverify.ParseToken(token, s.secret, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "resolve_session"}).Debugf("token rejected: %v", err)
		recordSessionResolved("jwt", false)
		return session
	}

	session.UserID = claims.UserID
	session.Valid = true
	recordSessionResolved("jwt", true)
	return session
}
