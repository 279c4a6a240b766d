package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/spec-kit/leads-service/internal/config"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

// AdminGate checks the single shared admin identity. It keeps no session state;
// every call is verified from scratch.
type AdminGate struct {
	username     [sha256.Size]byte
	password     [sha256.Size]byte
	passwordHash string
}

// NewAdminGate builds a gate from static credentials. A bcrypt hash, when
// configured, takes precedence over the plain password.
func NewAdminGate(cfg config.AdminConfig) *AdminGate {
	return &AdminGate{
		username:     sha256.Sum256([]byte(cfg.Username)),
		password:     sha256.Sum256([]byte(cfg.Password)),
		passwordHash: cfg.PasswordBcrypt,
	}
}

// Authorize compares both fields in constant time. Both comparisons always run
// so the outcome of one never shortcuts the other.
func (g *AdminGate) Authorize(username, password string) error {
	suppliedUser := sha256.Sum256([]byte(username))
	userOK := subtle.ConstantTimeCompare(suppliedUser[:], g.username[:])

	var passOK int
	if g.passwordHash != "" {
		if ComparePassword(g.passwordHash, password) == nil {
			passOK = 1
		}
	} else {
		suppliedPass := sha256.Sum256([]byte(password))
		passOK = subtle.ConstantTimeCompare(suppliedPass[:], g.password[:])
	}

	if userOK&passOK != 1 {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	return nil
}
