package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// AuthMiddleware validates the bearer token. Websocket clients cannot set
// headers, so a ?token= query parameter is accepted as well.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization token missing"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user id in token"))
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles. Admins are
// always allowed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(CtxRole)
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}
		role, _ := userRole.(string)
		if role == "admin" {
			c.Next()
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
		c.Abort()
	}
}
