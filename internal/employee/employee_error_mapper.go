package employee

import (
	"errors"

	employeeerrors "go-tracking/internal/employee/errors"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/dberror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeeerrors.ErrEmployeeNotFound
	case dberror.IsUniqueViolation(err, uniqueEmployeeNumber):
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	case dberror.IsUniqueViolation(err, uniqueEmployeeEmail):
		return employeeerrors.ErrEmployeeAlreadyExists
	case dberror.IsUnavailable(err):
		return apperror.ErrStorageUnavailable.WithCause(err)
	}
	return err
}
