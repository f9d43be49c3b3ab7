package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/akarpovich/notes-service/internal/common/constants"
	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	"github.com/akarpovich/notes-service/internal/common/httpmetrics"
	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/observability/metrics"
)

// HandleError is the single place where errors become HTTP responses. Domain
// errors carry their own status and public message; anything else is a 500.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		handleDomainError(w, r, domainErr, log)
		return
	}

	log.WithFields(ctx, logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, "internal server error")
}

func handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError, log *logger.Logger) {
	ctx := r.Context()
	status := err.HTTPStatus()

	fields := logger.Fields{
		"error_code": err.Code(),
		"category":   string(err.Category()),
		"status":     status,
		"action":     "domain_error",
	}

	if status >= http.StatusInternalServerError {
		log.WithFields(ctx, fields).Errorf("domain error: %s", err.Error())
	} else if log.ShouldLog(logger.DEBUG) {
		log.WithFields(ctx, fields).Debugf("domain error: %s", err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	message := err.Message()
	if err.Category() == commonerrors.CategoryValidation && err.Unwrap() != nil {
		message = err.Error()
	}

	WriteError(w, status, message)
}

// TraceIDFromContext returns the request trace id, if any.
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(constants.TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}
