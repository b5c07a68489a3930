package location

import (
	"errors"

	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/dberror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if dberror.IsUnavailable(err) {
		return apperror.ErrStorageUnavailable.WithCause(err)
	}
	return err
}
