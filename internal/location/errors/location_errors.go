package locationerrors

import (
	"go-tracking/internal/shared/apperror"
	"net/http"
)

var (
	ErrBatchEmpty = apperror.New(
		apperror.CodeValidation,
		"At least one location is required",
		http.StatusBadRequest,
	)
	ErrBatchTooLarge = apperror.New(
		apperror.CodeValidation,
		"A batch accepts at most 50 locations",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidation,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"startDate must not be after endDate",
		http.StatusBadRequest,
	)
)
