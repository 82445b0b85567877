package service

import (
	"errors"

	"gorm.io/gorm"

	"todo-tracker/internal/apperr"
)

// notFound turns a missing-row error into an operational NotFound with msg
// and passes any other error through.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
