// Package security provides session tokens and password credentials.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

const minSecretLength = 32

var (
	// ErrInvalidToken covers malformed, tampered, expired and payload-less tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrWeakSecret is returned when the signing secret is too short.
	ErrWeakSecret = fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
)

// Claims represents session token claims.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService defines session token operations.
type TokenService interface {
	Issue(userID string) (string, error)
	IssueWithTTL(userID string, ttl time.Duration) (string, error)
	Verify(tokenString string) (*Claims, error)
	TTL() time.Duration
}

type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes the token service.
type TokenOption func(*jwtService)

// WithClock overrides the clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewTokenService creates a new HS256 TokenService.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	s := &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func (s *jwtService) Issue(userID string) (string, error) {
	return s.IssueWithTTL(userID, s.ttl)
}

func (s *jwtService) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
