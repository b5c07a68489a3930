package session

import (
	"errors"

	sessionerrors "go-tracking/internal/session/errors"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/dberror"

	"gorm.io/gorm"
)

// errActiveConflict marks a create that lost the race on ActiveSessionIndex.
var errActiveConflict = errors.New("active session conflict")

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sessionerrors.ErrSessionNotFound
	}
	if dberror.IsUniqueViolation(err, ActiveSessionIndex) {
		return errActiveConflict
	}
	if dberror.IsUnavailable(err) {
		return apperror.ErrStorageUnavailable.WithCause(err)
	}

	return err
}
