package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
	"github.com/NefariousNGGA/backend/internal/usecase"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Create(ctx context.Context, in usecase.NewIdentity) (domain.Identity, error) {
	row := models.Identity{
		Handle:         in.Handle,
		DisplayName:    in.DisplayName,
		CredentialHash: in.CredentialHash,
		LookupKey:      in.LookupKey,
		CreatedAt:      now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Identity{}, storeError("identities.create", "username", err)
	}
	return toIdentity(row), nil
}

func (r *IdentityRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Identity{}).Where("handle = ?", handle).Count(&count).Error
	if err != nil {
		return false, domain.NewStoreError("identities.exists", err)
	}
	return count > 0, nil
}

func (r *IdentityRepository) Get(ctx context.Context, id int64) (*domain.Identity, error) {
	return r.first(ctx, "identities.get", "id = ?", id)
}

func (r *IdentityRepository) GetByHandle(ctx context.Context, handle string) (*domain.Identity, error) {
	return r.first(ctx, "identities.get_by_handle", "handle = ?", handle)
}

func (r *IdentityRepository) first(ctx context.Context, op string, query string, arg any) (*domain.Identity, error) {
	var row models.Identity
	err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	identity := toIdentity(row)
	return &identity, nil
}

// FindByHandles returns the identities among handles that exist, oldest first.
func (r *IdentityRepository) FindByHandles(ctx context.Context, handles []string) ([]domain.Identity, error) {
	if len(handles) == 0 {
		return nil, nil
	}
	var rows []models.Identity
	err := conn(ctx, r.db).Where("handle IN ?", handles).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("identities.find_by_handles", err)
	}
	result := make([]domain.Identity, 0, len(rows))
	for _, row := range rows {
		result = append(result, toIdentity(row))
	}
	return result, nil
}

func (r *IdentityRepository) GetCredentialByLookupKey(ctx context.Context, key string) (*usecase.StoredCredential, error) {
	var row models.Identity
	err := r.db.WithContext(ctx).Where("lookup_key = ?", key).Take(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStoreError("identities.get_by_lookup_key", err)
	}
	return &usecase.StoredCredential{Identity: toIdentity(row), Hash: row.CredentialHash}, nil
}

// ScanCredentials walks every stored credential in ascending id order, one
// keyset page at a time, until visit returns false.
func (r *IdentityRepository) ScanCredentials(ctx context.Context, batchSize int, visit func(usecase.StoredCredential) bool) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	var lastID int64
	for {
		var rows []models.Identity
		err := r.db.WithContext(ctx).
			Where("id > ?", lastID).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Limit(batchSize).
			Find(&rows).Error
		if err != nil {
			return domain.NewStoreError("identities.scan", err)
		}

		for _, row := range rows {
			if !visit(usecase.StoredCredential{Identity: toIdentity(row), Hash: row.CredentialHash}) {
				return nil
			}
			lastID = row.ID
		}

		if len(rows) < batchSize {
			return nil
		}
	}
}

func toIdentity(row models.Identity) domain.Identity {
	return domain.Identity{
		ID:          row.ID,
		Handle:      row.Handle,
		DisplayName: row.DisplayName,
		CreatedAt:   row.CreatedAt,
	}
}
