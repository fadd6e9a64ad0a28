package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// ReceiptLoggerMiddleware logs the outcome of receipt requests.
func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.WithField("order_id", orderID).Info("Receipt rendered")
		} else {
			utils.ErrorLogger.WithField("order_id", orderID).Errorf("Failed to render receipt, status %d", c.Writer.Status())
		}
	}
}
