package sessionerrors

import (
	"go-tracking/internal/shared/apperror"
	"net/http"
)

var (
	ErrSessionNotActive = apperror.New(
		apperror.CodeSessionNotActive,
		"No active tracking session. Please turn location ON first",
		http.StatusConflict,
	)
	ErrSessionAlreadyActive = apperror.New(
		apperror.CodeSessionAlreadyActive,
		"A tracking session is already active",
		http.StatusConflict,
	)
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tracking session not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeForbidden,
		"This account is not linked to an employee",
		http.StatusForbidden,
	)
)
