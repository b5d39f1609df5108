package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost keeps a hash in the tens of milliseconds on commodity hardware.
const DefaultBcryptCost = 10

// ResetTokenBytes is the entropy of a reset token (256 bits).
const ResetTokenBytes = 32

// CredentialService hashes passwords and produces password-reset secrets.
type CredentialService struct {
	cost int
	now  func() time.Time
}

// NewCredentialService creates a CredentialService; out-of-range costs fall back to the default.
func NewCredentialService(cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &CredentialService{cost: cost, now: time.Now}
}

// Hash returns a salted bcrypt hash of the password.
func (s *CredentialService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash.
func (s *CredentialService) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateResetToken returns a hex-encoded random token.
func (s *CredentialService) GenerateResetToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ExpiryIn returns the wall-clock time the given number of hours from now.
func (s *CredentialService) ExpiryIn(hours int) time.Time {
	return s.now().Add(time.Duration(hours) * time.Hour)
}
