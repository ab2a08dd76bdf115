package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowedMethods = "GET,POST,PUT,DELETE,PATCH,OPTIONS"
	allowedHeaders = "Origin,Content-Type,Accept,Authorization,Cache-Control,X-Requested-With"
	maxAgeSeconds  = "86400"
)

// CORS answers preflights and stamps CORS headers on every response. The
// allow-origin value is the request origin for loopback and allow-listed
// origins, and "*" otherwise. An empty allow-list means every origin is
// echoed. A request is never rejected on CORS grounds.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", allowOriginValue(origin, allowed))
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Methods", allowedMethods)
		header.Set("Access-Control-Allow-Headers", allowedHeaders)
		header.Set("Access-Control-Max-Age", maxAgeSeconds)
		// Responses differ per origin, so caches must key on it.
		header.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func allowOriginValue(origin string, allowed map[string]struct{}) string {
	if origin == "" {
		return "*"
	}
	if isLoopbackOrigin(origin) {
		return origin
	}
	if len(allowed) == 0 {
		return origin
	}
	if _, ok := allowed[origin]; ok {
		return origin
	}
	return "*"
}

func isLoopbackOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1")
}
