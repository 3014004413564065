package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is wrapped by repositories when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is wrapped when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// isDuplicateError reports whether err is a unique-constraint violation.
// GORM only translates these for some dialects, so also match the raw
// SQLite and PostgreSQL error texts.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
