package routes

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/blackzarifa/feedback-board/internal/auth"
	"github.com/blackzarifa/feedback-board/internal/identity"
	"github.com/go-chi/cors"
)

type ctxKey int

const (
	ClaimsCtxKey ctxKey = iota
	authErrCtxKey
)

// WithClaims verifies the bearer token, if any, and stores the claims in
// the request context. A bad token is not rejected here, only remembered
// for RequireAdmin.
func (routes *Routes) WithClaims(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		claims, err := routes.issuer.Verify(raw)
		if err != nil {
			ctx = context.WithValue(ctx, authErrCtxKey, err)
		} else {
			ctx = context.WithValue(ctx, ClaimsCtxKey, claims)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests without valid admin claims.
func (routes *Routes) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r) != nil {
			next.ServeHTTP(w, r)
			return
		}
		if err, ok := r.Context().Value(authErrCtxKey).(error); ok {
			routes.HandleErr(w, r, err)
			return
		}
		routes.HandleErr(w, r, ErrUnauthorized)
	})
}

func GetClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(ClaimsCtxKey).(*auth.Claims)
	return claims
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// requester describes the anonymous caller of r.
func requester(r *http.Request) identity.Requester {
	return identity.Requester{
		Address:   clientAddress(r),
		UserAgent: r.UserAgent(),
	}
}

// clientAddress strips the port from RemoteAddr. Behind a trusted proxy
// middleware.RealIP has already replaced RemoteAddr with the forwarded
// address, which carries no port.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// CORS allows origin to call the API from a browser. "*" allows any origin
// but never with credentials.
func CORS(origin string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: origin != "*",
		MaxAge:           600,
	})
}
