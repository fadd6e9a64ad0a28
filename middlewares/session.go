package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "cart_session"
	ctxSession    = "cart_session"
)

// CartSession identifies the caller's cart from the X-Session-ID header or
// the cart_session cookie. A new session id is issued when neither is sent
// and echoed back in both.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = strings.TrimSpace(cookie)
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetCookie(SessionCookie, id, 7*24*3600, "/", "", false, true)
		}
		c.Header(SessionHeader, id)
		c.Set(ctxSession, id)
		c.Next()
	}
}

// SessionID returns the cart session resolved by CartSession.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSession)
}
