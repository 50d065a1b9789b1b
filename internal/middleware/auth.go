// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eshopdev/eshop-backend/internal/models"
	"github.com/eshopdev/eshop-backend/internal/utils"
)

const principalKey = "principal"

// AccessTokenCookie is the cookie the SPA uses instead of the
// Authorization header.
const AccessTokenCookie = "access_token"

// AuthRequired resolves the bearer credential into a Principal and attaches
// it to the request. The user row is re-read so role and status changes take
// effect immediately: a BANNED or DELETED account is rejected even when its
// token is still valid.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.UnauthorizedResponse(c, "user not found")
			} else {
				utils.RespondError(c, err)
			}
			c.Abort()
			return
		}

		if user.Status == models.StatusBanned {
			utils.ForbiddenResponse(c, "account is banned")
			c.Abort()
			return
		}
		if user.Status == models.StatusDeleted {
			utils.ForbiddenResponse(c, "account is deleted")
			c.Abort()
			return
		}

		c.Set(principalKey, user.Principal())
		c.Next()
	}
}

// RolesRequired permits the request when the principal's role is in the
// given set. An empty set means "authenticated only". Composed after
// AuthRequired.
func RolesRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.UnauthorizedResponse(c, "authentication required")
			c.Abort()
			return
		}

		if len(roles) == 0 {
			c.Next()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c, "insufficient permissions")
		c.Abort()
	}
}

// GetPrincipal returns the Principal attached by AuthRequired.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}

	principal, ok := value.(models.Principal)
	return principal, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}

	return ""
}
