package postgres

import (
	"errors"

	apperrors "github.com/SAP-F-2025/certification-service/internal/errors"
	"gorm.io/gorm"
)

// baseRepository carries the connection shared by every repository
type baseRepository struct {
	db *gorm.DB
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return b.db
}

// translateNotFound maps gorm.ErrRecordNotFound to a NotFoundError
func translateNotFound(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return err
}
