// Package service contains application services for authentication and
// feedback entries.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/feedboard/feedboard/internal/crypto"
	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/limiter"
	"github.com/feedboard/feedboard/internal/model"
)

// TokenSubject is the subject claim carried by issued access tokens.
// There is a single shared editor identity, not per-user accounts.
const TokenSubject = "editor"

// AuthService defines password verification and token issuance.
type AuthService interface {
	// VerifyPasswordWithIP applies rate-limiting, checks the shared
	// editor password and issues an access token.
	VerifyPasswordWithIP(ctx context.Context, password, ip string) (model.Tokens, error)
}

type AuthServiceImpl struct {
	secretSalt []byte
	secretHash []byte
	signKey    []byte
	accessTTL  time.Duration
	lim        limiter.Limiter
}

// NewAuthService hashes the shared password with a fresh salt and
// constructs the service.
func NewAuthService(password string, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) (*AuthServiceImpl, error) {
	if password == "" {
		return nil, errors.New("empty shared password")
	}
	if len(signKey) == 0 {
		return nil, errors.New("empty signing key")
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return nil, err
	}
	return &AuthServiceImpl{
		secretSalt: salt,
		secretHash: pkgcrypto.HashSecret([]byte(password), salt),
		signKey:    signKey,
		accessTTL:  accessTTL,
		lim:        lim,
	}, nil
}

// VerifyPasswordWithIP checks the password with rate limiting by IP.
func (s *AuthServiceImpl) VerifyPasswordWithIP(ctx context.Context, password, ip string) (model.Tokens, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, ipHash)
	if err != nil {
		return model.Tokens{}, err
	}
	if !allowed {
		return model.Tokens{}, errs.ErrRateLimited
	}

	if !pkgcrypto.VerifySecret([]byte(password), s.secretSalt, s.secretHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, ipHash); ferr == nil && blocked {
			return model.Tokens{}, errs.ErrRateLimited
		}
		return model.Tokens{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, ipHash)

	access, exp, err := s.issueAccessToken()
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, nil
}

// issueAccessToken creates a signed HS256 JWT for the editor subject.
func (s *AuthServiceImpl) issueAccessToken() (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   TokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}
