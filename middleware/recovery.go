package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"noteapi/utils"
)

// RecoveryMiddleware converts panics into the standard error envelope so a
// broken handler never drops the connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered [%s %s]: %v",
					c.Request.Method, c.Request.URL.Path, r)
				c.Abort()
				c.JSON(http.StatusInternalServerError, &utils.Response{
					Status:  "error",
					Message: "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
