package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/toolroom/toolroom/internal/account"
	"github.com/toolroom/toolroom/internal/api/models"
)

// sessionKey is the context key for the authenticated session.
type sessionKey struct{}

// Session describes the authenticated caller for the duration of a request.
type Session struct {
	UserID   int64
	Username string
	Admin    bool
}

// Auth creates authentication middleware that validates bearer session tokens.
func Auth(accounts *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, r, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) < len(bearerPrefix) ||
				!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			tokenString := authHeader[len(bearerPrefix):]
			if tokenString == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := accounts.Authenticate(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, account.ErrTokenExpired):
					writeUnauthorized(w, r, "session token has expired")
				case errors.Is(err, account.ErrInvalidToken):
					writeUnauthorized(w, r, "invalid session token")
				default:
					writeUnauthorized(w, r, "authentication failed")
				}
				return
			}

			session := &Session{
				UserID:   claims.UserID,
				Username: claims.Username,
				Admin:    claims.Admin,
			}
			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin gates a route subtree to administrator accounts. It must be chained
// after Auth; an anonymous caller gets 401, an authenticated non-admin 403.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSession(r.Context())
		if session == nil {
			writeUnauthorized(w, r, "authentication required")
			return
		}
		if !session.Admin {
			writeForbidden(w, r, "administrator privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeUnauthorized writes a 401 Unauthorized response.
// Implemented directly here to avoid an import cycle with the response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// writeForbidden writes a 403 Forbidden response.
func writeForbidden(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewForbidden(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetSession retrieves the authenticated session from the context.
// Returns nil for anonymous requests.
func GetSession(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return s
	}
	return nil
}
