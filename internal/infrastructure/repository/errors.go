package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/NefariousNGGA/backend/internal/domain"
)

// storeError maps gorm failures onto domain errors. Duplicate keys become
// conflicts on resource; everything else is a store failure.
func storeError(op, resource string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: resource}
	}
	return domain.NewStoreError(op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
