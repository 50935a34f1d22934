package service

import (
	"net/http"

	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
)

var (
	// Unknown username on login is a 400 in the observed protocol, not a
	// 404 and not a 401.
	ErrUnknownUser = commonerrors.NewDomainError(
		"UNKNOWN_USER",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"unknown user",
	)

	ErrWrongPassword = commonerrors.NewDomainError(
		"WRONG_PASSWORD",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"wrong password",
	)
)
