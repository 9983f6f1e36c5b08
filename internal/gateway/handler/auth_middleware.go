package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/storekit/multisafepay-gateway/pkg/auth"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

type contextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey contextKey = "user_id"
	// RoleKey is the context key for the authenticated user role
	RoleKey contextKey = "role"
)

// AdminMiddleware validates the bearer token and requires the admin role
func AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := bearerClaims(w, r)
		if !ok {
			return
		}

		if claims.Role != "admin" {
			logger.WithContext(r.Context()).Warn().
				Uint("user_id", claims.UserID).
				Str("path", r.URL.Path).
				Msg("Admin access denied")
			respondJSON(w, http.StatusForbidden, Response{
				Success: false,
				Error:   "Admin access required",
			})
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next(w, r.WithContext(ctx))
	}
}

func bearerClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Authorization header required",
		})
		return nil, false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Bearer token required",
		})
		return nil, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "Invalid or expired token",
		})
		return nil, false
	}

	return claims, true
}
