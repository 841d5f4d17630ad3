package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/monitoring"
)

var tracer = otel.Tracer("usecase")

const (
	// bcrypt ignores input past 72 bytes, so longer tokens can never be ours.
	maxCredentialBytes = 72
)

type IdentityUsecase struct {
	repo      IdentityRepository
	hasher    CredentialHasher
	batchSize int
}

func NewIdentityUsecase(repo IdentityRepository, hasher CredentialHasher, batchSize int) *IdentityUsecase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &IdentityUsecase{
		repo:      repo,
		hasher:    hasher,
		batchSize: batchSize,
	}
}

// Issue registers a new identity and discloses its raw credential exactly
// once. Only the hash is stored.
func (uc *IdentityUsecase) Issue(ctx context.Context, handle, displayName string) (domain.IssuedCredential, error) {
	ctx, span := tracer.Start(ctx, "Identity.Usecase.Issue")
	defer span.End()

	if err := ValidateHandle(handle); err != nil {
		return domain.IssuedCredential{}, err
	}
	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return domain.IssuedCredential{}, err
	}

	taken, err := uc.repo.HandleExists(ctx, handle)
	if err != nil {
		span.RecordError(err)
		return domain.IssuedCredential{}, errors.Wrap(err, "IdentityUsecase.Issue: HandleExists failed")
	}
	if taken {
		return domain.IssuedCredential{}, domain.ConflictError{Resource: "username"}
	}

	raw, err := uc.hasher.Generate()
	if err != nil {
		span.RecordError(err)
		return domain.IssuedCredential{}, errors.Wrap(err, "IdentityUsecase.Issue: credential generation failed")
	}
	hash, err := uc.hasher.Hash(raw)
	if err != nil {
		span.RecordError(err)
		return domain.IssuedCredential{}, errors.Wrap(err, "IdentityUsecase.Issue: credential hashing failed")
	}
	lookupKey := uuid.NewString()

	identity, err := uc.repo.Create(ctx, NewIdentity{
		Handle:         handle,
		DisplayName:    name,
		CredentialHash: hash,
		LookupKey:      lookupKey,
	})
	if err != nil {
		span.RecordError(err)
		return domain.IssuedCredential{}, errors.Wrap(err, "IdentityUsecase.Issue: Create failed")
	}

	monitoring.IdentitiesIssued.Inc()
	span.SetAttributes(attribute.Int64("IdentityID", identity.ID))

	return domain.IssuedCredential{
		Identity:   identity,
		Credential: raw,
		LookupKey:  lookupKey,
	}, nil
}

// Resolve returns the identity owning token, or nil when the token is absent
// or matches nobody. Without a lookup key every stored hash is tried in
// creation order and the first match wins. With a lookup key only that
// identity's hash is tried; the key never authenticates by itself.
func (uc *IdentityUsecase) Resolve(ctx context.Context, token, lookupKey string) (*domain.Identity, error) {
	ctx, span := tracer.Start(ctx, "Identity.Usecase.Resolve")
	defer span.End()

	if token == "" {
		return nil, nil
	}
	if len(token) > maxCredentialBytes {
		monitoring.CredentialResolutions.WithLabelValues("rejected", "miss").Inc()
		return nil, nil
	}

	if lookupKey != "" {
		return uc.resolveByKey(ctx, token, lookupKey)
	}

	var found *domain.Identity
	verified := 0
	err := uc.repo.ScanCredentials(ctx, uc.batchSize, func(cred StoredCredential) bool {
		verified++
		if uc.hasher.Verify(cred.Hash, token) {
			identity := cred.Identity
			found = &identity
			return false
		}
		return true
	})
	monitoring.CredentialScanLength.Observe(float64(verified))
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "IdentityUsecase.Resolve: ScanCredentials failed")
	}

	monitoring.CredentialResolutions.WithLabelValues("scan", outcome(found)).Inc()
	return found, nil
}

func (uc *IdentityUsecase) resolveByKey(ctx context.Context, token, lookupKey string) (*domain.Identity, error) {
	cred, err := uc.repo.GetCredentialByLookupKey(ctx, lookupKey)
	if err != nil {
		return nil, errors.Wrap(err, "IdentityUsecase.Resolve: GetCredentialByLookupKey failed")
	}
	if cred == nil || !uc.hasher.Verify(cred.Hash, token) {
		monitoring.CredentialResolutions.WithLabelValues("key", "miss").Inc()
		return nil, nil
	}

	monitoring.CredentialResolutions.WithLabelValues("key", "hit").Inc()
	identity := cred.Identity
	return &identity, nil
}

func (uc *IdentityUsecase) GetByHandle(ctx context.Context, handle string) (*domain.Identity, error) {
	return uc.repo.GetByHandle(ctx, handle)
}

func outcome(identity *domain.Identity) string {
	if identity == nil {
		return "miss"
	}
	return "hit"
}
