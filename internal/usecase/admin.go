package usecase

import (
	"crypto/subtle"

	"github.com/NefariousNGGA/backend/internal/domain"
)

// AdminGuard checks the single out-of-band administrative secret.
type AdminGuard struct {
	secret []byte
}

func NewAdminGuard(secret string) AdminGuard {
	return AdminGuard{secret: []byte(secret)}
}

// Check fails with domain.ForbiddenError on mismatch. An unconfigured secret
// matches nothing.
func (g AdminGuard) Check(presented string) error {
	if len(g.secret) == 0 {
		return domain.ForbiddenError{}
	}
	if subtle.ConstantTimeCompare(g.secret, []byte(presented)) != 1 {
		return domain.ForbiddenError{}
	}
	return nil
}
