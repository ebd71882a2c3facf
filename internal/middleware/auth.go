package middleware

import (
	"context"
	"strings"
	"time"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/util"
	"quizdesk_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenRevocationStore answers whether a user's tokens have been
// revoked (by suspension or role change) and when.
type TokenRevocationStore interface {
	RevokedAt(ctx context.Context, userID uint) (time.Time, bool, error)
}

func AuthMiddleware(cfg *config.Config, revocations TokenRevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		// Tokens issued before the user's revocation instant are dead,
		// regardless of their expiry. A store outage only disables
		// revocation, not authentication.
		if revocations != nil && claims.IssuedAt != nil {
			revokedAt, revoked, err := revocations.RevokedAt(c.Request.Context(), claims.UserID)
			if err != nil {
				logger.Log.Error("revocation lookup failed", zap.Error(err))
			} else if revoked && !claims.IssuedAt.Time.After(revokedAt) {
				util.Unauthorized(c)
				c.Abort()
				return
			}
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware allows only the given roles through. Admin carries all
// staff powers and passes every check.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == model.Admin || user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
