package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"guildwatch/internal/adapters/metrics"
	authjwt "guildwatch/internal/auth"
	"guildwatch/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

type contextKey struct{}

var claimsKey = contextKey{}

// ClaimsFrom returns the session claims the authenticator stored on the
// request context, or nil for unauthenticated requests.
func ClaimsFrom(ctx context.Context) *authjwt.SessionClaims {
	claims, _ := ctx.Value(claimsKey).(*authjwt.SessionClaims)
	return claims
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request and observes its duration. The route
// label uses the chi pattern, not the raw path, to keep cardinality bounded.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(recorder.status)
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method, status).Observe(time.Since(start).Seconds())

		slog.Info("Request handled",
			"method", r.Method, "route", route,
			"status", recorder.status, "duration", time.Since(start))
	})
}

// Authenticate validates the bearer token and stores its claims on the
// request context.
func (h *Handlers) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards a route group behind a role. It must run after
// Authenticate.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFrom(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if claims.Role != role {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
