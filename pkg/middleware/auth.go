package middleware

import (
	"net/http"
	"strings"

	"naturehatch-backend/internal/data/entity"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

// extractToken reads the bearer header first, then falls back to the
// httpOnly cookie set at login.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Auth middleware validates the JWT and attaches user identity to context
func Auth(config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := utils.ParseAuthToken(token, config.JWT.Secret)
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseObjectID(claims.UserID)
			if err != nil {
				logger.Warn("Token carries malformed user ID", zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin middleware rechecks the role against the stored user document, so a
// stale token cannot keep admin access after a role change
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.Hex()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || user.Role != entity.RoleAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.Hex()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
