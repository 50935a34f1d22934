package http

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks a decoded request against its `validate` tags and
// reports the offending fields in a VALIDATION_FAILED domain error.
func ValidateStruct(v any) commonerrors.DomainError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return commonerrors.NewDomainError(
			"VALIDATION_FAILED",
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			"validation failed",
		).WithCause(err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}

	return commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"missing or empty fields: "+strings.Join(fields, ", "),
	)
}
