// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/domain/user"
	"github.com/your-org/fertishop-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

const (
	contextUserIDKey = "user_id"
	contextUserKey   = "current_user"
)

// RequireAuth resolves the request's bearer token to a concrete user
// record and rejects the request with a generic 401 otherwise. A valid
// token whose user no longer exists is treated as invalid. The reason
// for a rejection is logged server-side but never surfaced to the
// caller.
func RequireAuth(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	reject := func(c *gin.Context, reason string) {
		logger.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"reason": reason,
		}).Info("rejected unauthenticated request")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		c.Abort()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, "missing authorization header")
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			reject(c, "empty or malformed bearer token")
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			reject(c, "token validation failed: "+err.Error())
			return
		}

		var u user.User
		if err := db.Where("id = ?", claims.UserID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reject(c, "token references a missing user")
			} else {
				// Internal failures still map to a generic 401 on this
				// path rather than leaking storage errors
				reject(c, "user lookup failed: "+err.Error())
			}
			return
		}

		c.Set(contextUserIDKey, u.ID)
		c.Set(contextUserKey, &u)

		c.Next()
	}
}

// UserIDFromContext extracts the authenticated user ID from the gin context
func UserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(contextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// UserFromContext extracts the authenticated user record from the gin context
func UserFromContext(c *gin.Context) (*user.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	u, ok := value.(*user.User)
	return u, ok
}
