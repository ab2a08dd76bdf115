package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/db"
)

// dbAvailableKey is the context key recording whether the database answered
const dbAvailableKey = "dbAvailable"

// DatabaseStatus flags every request with the database's current
// availability. Requests are never failed here; read handlers degrade to
// default payloads and write handlers surface the outage themselves. Degraded
// responses carry an X-Database-Status header for diagnostics.
func DatabaseStatus(health *db.Health) gin.HandlerFunc {
	return func(c *gin.Context) {
		available := health.Available(c.Request.Context())
		c.Set(dbAvailableKey, available)
		if !available {
			c.Header("X-Database-Status", "unavailable")
		}
		c.Next()
	}
}

// DatabaseAvailable reports the availability recorded for this request.
// Requests outside the gate count as available so handlers fail naturally.
func DatabaseAvailable(c *gin.Context) bool {
	value, exists := c.Get(dbAvailableKey)
	if !exists {
		return true
	}
	available, ok := value.(bool)
	return !ok || available
}
