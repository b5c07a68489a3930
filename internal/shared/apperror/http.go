package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// HTTPError is the transport view of an error. It never carries the wrapped
// cause.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		mapped := MapValidationError(verrs)
		return HTTPError{
			Status:  mapped.HTTPStatus,
			Code:    mapped.Code,
			Message: mapped.Message,
			Details: mapped.Details,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
