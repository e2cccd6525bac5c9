package middleware

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/flowloop/momentum-api/internal/database"
	"github.com/flowloop/momentum-api/internal/models"
	"github.com/flowloop/momentum-api/internal/request"
	"github.com/flowloop/momentum-api/internal/services/oidc"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserFromContext extracts the user from the request context
func UserFromContext(r *http.Request) *models.User {
	return request.UserFromContext(r)
}

// Auth creates authentication middleware that validates bearer tokens and
// resolves (creating on first sight) the local user row. Rejections happen
// before any other processing: no data is fetched for unauthenticated
// requests.
func Auth(users *database.UserRepository, verifier *oidc.Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			tokenString := parts[1]
			ctx := r.Context()

			claims, err := verifier.Verify(ctx, tokenString)
			if err != nil {
				logger.Warn("token_verification_failed", zap.Error(err))
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetByProviderID(ctx, claims.Sub)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					user = &models.User{
						ID:         uuid.New(),
						Email:      claims.Email,
						ProviderID: &claims.Sub,
					}
					if claims.Name != "" {
						name := claims.Name
						user.Name = &name
					}
					if err := users.Create(ctx, user); err != nil {
						logger.Error("failed_to_create_user", zap.Error(err))
						respondError(w, http.StatusInternalServerError, "Failed to create user")
						return
					}
				} else {
					logger.Error("failed_to_fetch_user", zap.Error(err))
					respondError(w, http.StatusInternalServerError, "Database error")
					return
				}
			} else if user.Email != claims.Email && claims.Email != "" {
				user.Email = claims.Email
				if err := users.Update(ctx, user); err != nil {
					logger.Warn("failed_to_update_user_email", zap.Error(err))
				}
			}

			ctx = request.WithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success": false,
		"error":   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		_ = err
	}
}
