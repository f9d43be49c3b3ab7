package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akarpovich/notes-service/internal/common/constants"
	"github.com/akarpovich/notes-service/internal/common/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	require.NoError(t, err)
	return log
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)

	RecoveryMiddleware(newTestLogger(t))(panicking).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)
	require.Contains(t, rec.Body.String(), "internal server error")
}

func TestTraceIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)

	TraceIDMiddleware(next).ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get("X-Trace-ID"))
}

func TestTraceIDMiddleware_KeepsIncomingID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("X-Trace-ID", "trace-123")

	TraceIDMiddleware(next).ServeHTTP(rec, req)

	require.Equal(t, "trace-123", seen)
	require.Equal(t, "trace-123", rec.Header().Get("X-Trace-ID"))
}

func TestMaxRequestSizeMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := MaxRequestSizeMiddleware(16)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(strings.Repeat("x", 64)))

	mw(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Contains(t, rec.Body.String(), "request body too large")
}

func TestMaxRequestSizeMiddleware_SmallBodyPasses(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"a"}`))

	mw(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
