package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/composables"
)

// ActorResolver turns an incoming request into the acting identity. The
// workflow core never authenticates; resolution is supplied by whatever
// auth layer fronts this process.
type ActorResolver func(r *http.Request) (authz.Actor, error)

// WithActor resolves the actor and stores it on the request context.
// Requests the resolver rejects are turned away before reaching handlers.
func WithActor(resolve ActorResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := resolve(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActor(r.Context(), actor)))
		})
	}
}

// WithPool makes the database pool reachable from request contexts so
// services can open their transactions.
func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// RequestLogger attaches a request-scoped log entry and writes one line per
// completed request.
func RequestLogger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := log.WithFields(logrus.Fields{
				"request_id": uuid.New().String(),
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			next.ServeHTTP(w, r.WithContext(composables.WithLogger(r.Context(), entry)))
			entry.WithField("duration", time.Since(start).String()).Info("request completed")
		})
	}
}
