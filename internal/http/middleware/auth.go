package middleware

import (
	"context"
	"errors"
	"net/http"

	"service-tracking/internal/apperr"
	"service-tracking/internal/auth"
	"service-tracking/internal/domain"
	"service-tracking/internal/logx"
)

// Authenticator resolves a bearer token into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials string) (domain.Identity, error)
}

// RequireIdentity rejects requests without a valid Authorization header and stores the
// caller in the request context for handlers.
func RequireIdentity(a Authenticator, logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing bearer token")
				return
			}
			id, err := a.Authenticate(r.Context(), header)
			if err != nil {
				logger.Debug("http auth rejected",
					logx.String("path", r.URL.Path),
					logx.Err(err),
				)
				if errors.Is(err, apperr.ErrUnauthorized) {
					unauthorized(w, "invalid bearer token")
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"authentication unavailable","code":"unavailable"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="tracking"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `","code":"unauthorized"}`))
}
