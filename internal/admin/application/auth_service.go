package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/sngm3741/feedback-collector/api/internal/session"
)

// AuthService verifies admin credentials and produces the session state.
type AuthService interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
}

func NewAuthService(admins AdminRepository) AuthService {
	return &authService{admins: admins}
}

type authService struct {
	admins AdminRepository
}

// Login compares the one-way hash of password against the stored hash for
// username. Unknown users and wrong passwords fail identically.
func (s *authService) Login(ctx context.Context, username, password string) (session.Session, error) {
	account, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		return session.Session{}, fmt.Errorf("find admin account: %w", err)
	}
	if account == nil || account.PasswordHash != HashPassword(password) {
		return session.Session{}, ErrInvalidCredentials
	}

	return session.Session{AdminLoggedIn: true, AdminUsername: account.Username}, nil
}

// HashPassword returns the hex-encoded SHA-256 of password. The hash is
// deterministic and unsalted to stay compatible with existing Admin records;
// a real deployment should migrate to a salted adaptive hash.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
