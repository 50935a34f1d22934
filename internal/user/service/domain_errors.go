package service

import (
	"net/http"

	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
)

// ErrUpdateForbidden covers both "editing someone else's record" and
// "editing a record that does not exist"; the protocol returns 403 for
// either, so the two cases are indistinguishable to the caller.
var ErrUpdateForbidden = commonerrors.NewDomainError(
	"FORBIDDEN",
	commonerrors.CategoryForbidden,
	http.StatusForbidden,
	"forbidden",
)
