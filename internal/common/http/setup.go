package http

import (
	"net/http"

	"github.com/akarpovich/notes-service/internal/common/constants"
	"github.com/akarpovich/notes-service/internal/common/httpmetrics"
	"github.com/akarpovich/notes-service/internal/common/logger"
)

// BuildBaseHandler wraps the application mux with the shared middleware chain.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metricsWrap := httpmetrics.Middleware
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return recovery(TraceIDMiddleware(maxRequestSize(metricsWrap(handler))))
}
