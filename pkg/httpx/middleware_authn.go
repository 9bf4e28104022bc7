package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/eventcart/pkg/jwtx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (jwtx.Claims, error)
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker func(jti string) bool

// BearerToken extracts the token from an Authorization header, or "".
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
}

// AuthnMiddleware rejects requests without a valid, unrevoked bearer token
// with 401 and stores the claims in the request context.
func AuthnMiddleware(v TokenVerifier, revoked RevocationChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerToken(r)
			if raw == "" {
				WriteBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("jwt verify failed", "err", err)
				WriteBearerError(w, "token verification failed")
				return
			}

			if revoked != nil && revoked(claims.ID) {
				WriteBearerError(w, "token revoked")
				return
			}

			ctx = contextWithAuth(ctx, raw, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthn is AuthnMiddleware for endpoints that also serve anonymous
// callers. A valid token is recorded in the context; a bad one is ignored.
func OptionalAuthn(v TokenVerifier, revoked RevocationChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := BearerToken(r); raw != "" {
				if claims, err := v.Verify(raw); err == nil && (revoked == nil || !revoked(claims.ID)) {
					r = r.WithContext(contextWithAuth(r.Context(), raw, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after AuthnMiddleware. Non-admins get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			WriteError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteBearerError writes an RFC 6750 invalid_token response with a JSON body.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
