package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/service"
)

type contextKey string

const claimsKey contextKey = "claims"

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// Auth verifies the session cookie and attaches the verified claims to the
// request context. Handlers read an immutable Claims value; nothing is
// written back onto the request.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				deny(w, http.StatusUnauthorized, "No token in the request")
				return
			}

			claims, err := authService.VerifyToken(cookie.Value)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token verification failed: %v", err)
				deny(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly gates a route on the admin flag carried in the verified token.
// The flag is not re-read from the store, so a demoted admin keeps access
// until the token expires or is renewed.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "No token in the request")
			return
		}
		if !claims.IsAdmin {
			deny(w, http.StatusForbidden, "User is not an administrator")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(domain.Claims)
	return claims, ok
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
