package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets any origin read the inventory. The API has no credentials or
// write methods to protect.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", headerRequestID, headerTraceID},
		ExposeHeaders:   []string{headerRequestID, headerTraceID},
		MaxAge:          12 * time.Hour,
	})
}
