package reporterrors

import (
	"go-tracking/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeValidation,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrDateRequired = apperror.New(
		apperror.CodeValidation,
		"date is required",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeValidation,
		"startDate must not be after endDate",
		http.StatusBadRequest,
	)
	ErrRangeTooLong = apperror.New(
		apperror.CodeValidation,
		"Date range cannot exceed 92 days",
		http.StatusBadRequest,
	)
)
