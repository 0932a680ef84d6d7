package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"orcamentos/internal/shared/auth"
)

// AccessTokenCookie is the cookie set on sign-in.
const AccessTokenCookie = "access_token"

func Auth(jwt *auth.JWT) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			// Try HttpOnly cookie first (browser requests)
			if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					unauthorized(w, "Autenticação necessária.")
					return
				}
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
					unauthorized(w, "Cabeçalho de autorização inválido.")
					return
				}
				token = strings.TrimSpace(parts[1])
			}

			claims, err := jwt.Validate(token)
			if err != nil {
				unauthorized(w, "Token inválido ou expirado.")
				return
			}

			recordUserID(r.Context(), claims.UserID)
			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
