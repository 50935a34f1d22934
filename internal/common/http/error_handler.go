package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
	"github.com/eNoodles/user-service/internal/common/logger"
	"github.com/eNoodles/user-service/internal/observability/metrics"
)

// HandleError translates a service error into the caller-visible status.
// Unrecognized errors are logged and become a plain 500 so that backend
// detail never leaks to the caller.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	traceID := GetTraceID(r.Context())

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status := domainErr.HTTPStatus()

		if log.ShouldLog(logger.DEBUG) {
			log.WithFields(r.Context(), logger.Fields{
				"error_code": domainErr.Code(),
				"category":   string(domainErr.Category()),
				"status":     status,
				"action":     "domain_error",
			}).Debugf("domain error: %s", domainErr.Error())
		}

		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(status),
		).Inc()

		WriteErrorEnvelope(w, status, domainErr.Code(), domainErr.Message(), nil, traceID)
		return
	}

	log.WithFields(r.Context(), logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
		"path":   r.URL.Path,
	}).Errorf("unhandled error: %v", err)

	WriteErrorEnvelope(w, http.StatusInternalServerError, CodeUnknown, "internal server error", nil, traceID)
}
