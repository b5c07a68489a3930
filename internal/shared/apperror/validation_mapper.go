package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldViolation is the per-field detail returned with validation errors.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// formatFieldName turns "batteryLevel" or "battery_level" into "Battery Level".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(b.String()))
}

// MapValidationError converts binding errors into a VALIDATION_ERROR AppError.
// The message names the first failing field; Details lists all of them.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		violations := make([]FieldViolation, 0, len(errs))
		for _, fe := range errs {
			violations = append(violations, FieldViolation{
				Field: fieldPath(fe),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}

		first := errs[0]
		humanReadableField := formatFieldName(first.Field())

		var appErr *AppError
		switch first.Tag() {
		case "required":
			appErr = RequiredField(humanReadableField)
		case "gte", "lte", "min", "max", "gt", "lt":
			appErr = OutOfRangeField(humanReadableField, first.Tag()+"="+first.Param())
		default:
			appErr = InvalidField(humanReadableField)
		}
		return appErr.WithDetails(violations)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return New(CodeValidation, "Malformed JSON payload", http.StatusBadRequest)
	}

	return New(CodeValidation, "Invalid input", http.StatusBadRequest)
}

// fieldPath strips the top-level struct name from the namespace so nested
// batch items read as "locations[3].latitude".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}
