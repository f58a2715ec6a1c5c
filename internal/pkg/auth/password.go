// internal/pkg/auth/password.go
package auth

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fertishop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordManager handles password hashing and verification
type PasswordManager struct {
	config *config.Config
	logger *logrus.Logger
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config, logger *logrus.Logger) *PasswordManager {
	return &PasswordManager{
		config: cfg,
		logger: logger,
	}
}

// HashPassword hashes a password using bcrypt with a random salt.
// Two calls with the same input produce different hashes.
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	// bcrypt silently truncates beyond 72 bytes
	if len(password) > 72 {
		return "", fmt.Errorf("password must be no more than 72 bytes long")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its stored hash. A
// malformed hash is never propagated to the caller: it is logged and
// reported as a plain mismatch.
func (p *PasswordManager) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true
	}
	if err != bcrypt.ErrMismatchedHashAndPassword {
		p.logger.WithError(err).Warn("password verification failed on malformed hash")
	}
	return false
}
