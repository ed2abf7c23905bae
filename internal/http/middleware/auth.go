package middleware

import (
	"net/http"
	"strings"

	"service-parcel/internal/auth"
	"service-parcel/internal/logx"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Auth guards routes with a bearer token.
type Auth struct {
	verifier TokenVerifier
	logger   logx.Logger
	rejected prometheus.Counter
}

// NewAuth creates the auth gate. rejected may be nil.
func NewAuth(v TokenVerifier, logger logx.Logger, rejected prometheus.Counter) *Auth {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Auth{verifier: v, logger: logger, rejected: rejected}
}

// Authenticate rejects requests without a valid token with 401 and stores the
// identity in the request context otherwise. The token is the second
// whitespace-separated part of the Authorization header.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			a.reject(w, r, "missing authorization header")
			return
		}
		parts := strings.Fields(header)
		if len(parts) < 2 {
			a.reject(w, r, "malformed authorization header")
			return
		}

		id, err := a.verifier.Verify(parts[1])
		if err != nil {
			a.reject(w, r, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// RequireEmailMatch answers 403 unless the token's email claim equals the
// named path parameter. It must run after Authenticate.
func (a *Auth) RequireEmailMatch(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := auth.FromContext(r.Context())
			if id.Email() != chi.URLParam(r, param) {
				a.logger.Warn("email mismatch", logx.String("path", r.URL.Path))
				writeMessage(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) reject(w http.ResponseWriter, r *http.Request, reason string) {
	if a.rejected != nil {
		a.rejected.Inc()
	}
	a.logger.Debug("auth rejected", logx.String("path", r.URL.Path), logx.String("reason", reason))
	writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
}
