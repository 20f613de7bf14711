package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dan9191/gallery-service/internal/auth"
	"github.com/gorilla/mux"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user id placed in the request context
// by AuthMiddleware.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID is used by tests to build a pre-authenticated context
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// AuthMiddleware verifies the bearer token and injects the user id into the
// request context. Token lookup order: Authorization header, token cookie,
// raw Cookie header.
func AuthMiddleware(tokens *auth.TokenService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					writeAuthError(w, http.StatusInternalServerError, "Server error")
				}
			}()

			token := extractToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return authHeader[7:]
	}

	// Cookie values arrive percent-encoded when set by a browser helper,
	// so decode here the way the original's cookie parser does.
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if decoded, err := url.QueryUnescape(cookie.Value); err == nil {
			return decoded
		}
		return cookie.Value
	}

	// Fallback: parse the raw Cookie header ourselves
	if raw := r.Header.Get("Cookie"); raw != "" {
		for _, part := range strings.Split(raw, ";") {
			part = strings.TrimSpace(part)
			eq := strings.Index(part, "=")
			if eq == -1 {
				continue
			}
			if strings.TrimSpace(part[:eq]) != "token" {
				continue
			}
			val := strings.TrimSpace(part[eq+1:])
			if decoded, err := url.QueryUnescape(val); err == nil {
				return decoded
			}
			return val
		}
	}

	return ""
}

func writeAuthError(w http.ResponseWriter, status int, result string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"result":  result,
	})
}
