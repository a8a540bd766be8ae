package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"clinic-appointment-bot/pkg/response"
)

// TokenMiddleware authenticates the external chat transport against the
// configured bot access token. This is boundary glue between the transport and
// the core, not end-user authentication.
type TokenMiddleware struct {
	token string
}

func NewTokenMiddleware(token string) *TokenMiddleware {
	return &TokenMiddleware{token: token}
}

func (m *TokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
			response.Unauthorized(w, "Invalid access token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
