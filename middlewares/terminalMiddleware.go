package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/utils"
)

// TerminalMiddleware tags the request with the till that sent it so order
// logs can be traced back to a register.
func TerminalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminal := c.Request.Header.Get("x-terminal-id")
		if terminal == "" {
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(utils.SetTerminalIdInContext(c.Request.Context(), terminal))
		c.Next()
	}
}
