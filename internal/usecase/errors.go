package usecase

import (
	"errors"

	"patroltrack-service/internal/domain/repository"
	"patroltrack-service/pkg/apperr"
)

// classify turns repository errors into application errors. Errors already
// classified pass through untouched.
func classify(err error, message string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.Internal(message, err)
}
