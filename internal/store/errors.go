package store

import (
	"errors"
	"strings"

	"github.com/devplatform/tracker/internal/apperr"
	"gorm.io/gorm"
)

// translate maps database errors onto apperr kinds. Errors that are already
// typed pass through; anything else is returned unchanged for the caller to hide.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound(entity)
	case isUniqueViolation(err):
		return apperr.ErrDuplicateKey("Email")
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
