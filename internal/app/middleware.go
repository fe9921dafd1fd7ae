package app

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dompet/dompet/internal/config"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns the id assigned to the request by the middleware chain.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// SetupMiddleware wraps the router with request ids, access logging, panic
// recovery and CORS. CORS sits outermost so that preflight requests are
// answered before route matching.
func SetupMiddleware(r *mux.Router, cfg config.Application) http.Handler {
	var h http.Handler = r
	h = handlers.CustomLoggingHandler(io.Discard, h, logRequest)
	h = withRequestID(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.StandardLogger()),
		handlers.PrintRecoveryStack(true),
	)(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(cfg.Cors.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)(h)
	return h
}

// Propagate X-Request-Id or generate a fresh one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func logRequest(_ io.Writer, params handlers.LogFormatterParams) {
	log.WithFields(log.Fields{
		"request_id": RequestID(params.Request.Context()),
		"method":     params.Request.Method,
		"path":       params.URL.Path,
		"status":     params.StatusCode,
		"size":       params.Size,
		"duration":   time.Since(params.TimeStamp),
	}).Info("request handled")
}
