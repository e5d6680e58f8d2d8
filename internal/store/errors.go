package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate reports a unique constraint violation (username or email).
	ErrDuplicate = errors.New("unique constraint violation")
	// ErrIntegrity reports any other constraint violation.
	ErrIntegrity = errors.New("integrity constraint violation")
)

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// translate maps gorm and driver errors onto the store taxonomy.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}

	var nf *NotFoundError

	switch {
	case errors.As(err, &nf):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Entity: entity}
	case isDuplicate(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case isIntegrity(err):
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}

func isIntegrity(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates not-null constraint") ||
		strings.Contains(msg, "violates foreign key constraint")
}
