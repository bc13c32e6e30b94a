package middlewares

import (
	"axiapac.com/hrdesk/web/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID keeps the caller's X-Request-ID or issues a new one, echoes it on the
// response and stores it under common.RequestIDKey.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}

		c.Set(common.RequestIDKey, id)
		c.Header(common.RequestIDHeader, id)
		c.Next()
	}
}
