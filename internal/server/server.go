// Package server wires the GraphQL schema, probes and middleware into an HTTP handler.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/config"
	"github.com/devplatform/tracker/internal/graphql"
	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	requestsTotal = promauto.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		promclient.HistogramOpts{
			Name:    "tracker_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: promclient.DefBuckets,
		},
		[]string{"method", "path"},
	)

	graphqlErrorsTotal = promauto.NewCounterVec(
		promclient.CounterOpts{
			Name: "tracker_graphql_errors_total",
			Help: "Total number of errors returned in GraphQL responses",
		},
		[]string{"code"},
	)

	panicsTotal = promauto.NewCounter(
		promclient.CounterOpts{
			Name: "tracker_panics_total",
			Help: "Total number of recovered panics",
		},
	)
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewHandler builds the HTTP handler serving /graphql, /health and /ready
func NewHandler(cfg *config.Config, gqlSchema *graphql.Schema, store HealthChecker, tokens *auth.TokenIssuer, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	schema := gqlSchema.GetSchema()
	gqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   cfg.IsDevelopment(),
		GraphiQL: cfg.IsDevelopment(),
		ResultCallbackFn: func(ctx context.Context, params *gql.Params, result *gql.Result, responseBody []byte) {
			if len(result.Errors) == 0 {
				return
			}
			for _, e := range result.Errors {
				code, _ := e.Extensions["code"].(string)
				if code == "" {
					code = "GRAPHQL"
				}
				graphqlErrorsTotal.WithLabelValues(code).Inc()
			}
			logger.WithFields(logrus.Fields{
				"operation": params.OperationName,
				"user":      auth.GetUserFromContext(ctx),
				"errors":    result.Errors,
			}).Warn("GraphQL errors")
		},
	})

	mux.Handle("/graphql", gqlHandler)

	// Health endpoint (liveness probe)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Readiness endpoint (readiness probe)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.HealthCheck(ctx); err != nil {
			logger.WithError(err).Warn("Readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
		})
	})

	// Middleware chain (outermost last)
	authMw := auth.NewMiddleware(tokens, logger)
	var h http.Handler = mux
	h = authMw.ExtractToken(h)
	h = metricsMiddleware(h)
	h = loggingMiddleware(logger)(h)
	h = recoveryMiddleware(logger)(h)
	h = corsMiddleware(cfg.CORSOrigins)(h)
	return h
}

// New creates the main HTTP server
func New(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartMetricsServer serves /metrics on the metrics port until it fails
func StartMetricsServer(cfg *config.Config, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: mux,
	}

	logger.WithField("port", cfg.MetricsPort).Info("Starting metrics server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("Metrics server failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Middleware

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowedOrigin := ""
			for _, allowed := range origins {
				if allowed == "*" || origin == allowed {
					allowedOrigin = allowed
					break
				}
			}

			if allowedOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "3600")
			}

			// Handle CORS preflight
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"duration":    time.Since(start).Milliseconds(),
				"remote_addr": r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestsTotal.WithLabelValues(r.Method, r.URL.Path, fmt.Sprintf("%d", rw.statusCode)).Inc()
		requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

// recoveryMiddleware recovers from panics and returns 500 error
func recoveryMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.WithFields(logrus.Fields{
						"error":  err,
						"stack":  string(debug.Stack()),
						"method": r.Method,
						"path":   r.URL.Path,
					}).Error("Panic recovered")

					panicsTotal.Inc()

					writeJSON(w, http.StatusInternalServerError, map[string]string{
						"error": "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
