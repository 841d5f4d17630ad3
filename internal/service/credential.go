package service

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const credentialLength = 32

// CredentialService issues random bearer credentials and keeps only their
// bcrypt hashes.
type CredentialService struct {
	cost int
}

func NewCredentialService(cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialService{cost: cost}
}

func (s *CredentialService) Generate() (string, error) {
	raw, err := gonanoid.New(credentialLength)
	if err != nil {
		return "", errors.Wrap(err, "nanoid generation failed")
	}
	return raw, nil
}

func (s *CredentialService) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), s.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hashing failed")
	}
	return string(hash), nil
}

// Verify reports whether raw matches hash. Malformed hashes never match.
func (s *CredentialService) Verify(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
