package middlewares

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AllowAllOrigins answers preflight requests and stamps
// Access-Control-Allow-Origin: * on every response, with or without an
// Origin header.
func AllowAllOrigins() gin.HandlerFunc {
	cc := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}
	handler := cors.New(cc)
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		handler(ctx)
	}
}

// SecureHeaders sets the headers every JSON response carries.
func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "no-referrer")
	ctx.Next()
}
