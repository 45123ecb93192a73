package middleware

import (
	"context"
	"crypto/ecdsa"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/haguru/bugtracker/internal/auth"
	"github.com/haguru/bugtracker/internal/interfaces"
)

const (
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"
	MsgMustBeLoggedIn   = "You must be logged in!"
	MsgPermissionDenied = "Permission denied"
)

type claimsKey struct{}

// ContextWithClaims stores the session claims on ctx.
func ContextWithClaims(ctx context.Context, claims *auth.CustomClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the session claims put there by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*auth.CustomClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.CustomClaims)
	return claims, ok && claims != nil
}

// AuthMiddleware reads the session cookie and, when it holds a valid token,
// attaches its claims to the request context. Requests without a valid token
// pass through anonymously.
func AuthMiddleware(cookieName string, publicKey *ecdsa.PublicKey, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.VerifyToken(cookie.Value, publicKey)
			if err != nil {
				logger.Debug("Ignoring invalid session token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireLogin rejects anonymous requests with 401.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, ErrUnauthorized, MsgMustBeLoggedIn)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission rejects requests whose session lacks permission with 403,
// and anonymous ones with 401.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return RequirePermissionOrSelf(permission, "")
}

// RequirePermissionOrSelf is RequirePermission that also lets a user through
// when the path variable idVar names their own account.
func RequirePermissionOrSelf(permission, idVar string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := ClaimsFromContext(r.Context())
			if claims.Can(permission) {
				next.ServeHTTP(w, r)
				return
			}
			if idVar != "" && claims.UserID != "" && mux.Vars(r)[idVar] == claims.UserID {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusForbidden, ErrForbidden, MsgPermissionDenied)
		}))
	}
}
