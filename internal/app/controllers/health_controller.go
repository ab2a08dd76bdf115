package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/db"
)

// HealthController handles liveness and readiness probes
type HealthController struct {
	health *db.Health
}

// NewHealthController creates a new HealthController
func NewHealthController(health *db.Health) *HealthController {
	return &HealthController{health: health}
}

// Ping handles the bare liveness probe
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service is up"
// @Router /ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health handles the readiness probe. The service reports ok even with the
// database down; read endpoints degrade instead of failing.
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service and dependency status"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	database := "up"
	if !c.health.Available(ctx.Request.Context()) {
		database = "down"
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database,
	})
}
