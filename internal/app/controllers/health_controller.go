package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unishare/internal/app/models/dto"
)

// Pinger is anything whose liveness can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness of the API and its backing stores
type HealthController struct {
	database Pinger
	cache    Pinger
}

// NewHealthController creates a new HealthController. cache may be nil when the
// page cache is disabled.
func NewHealthController(database, cache Pinger) *HealthController {
	return &HealthController{database: database, cache: cache}
}

// Health handles the liveness probe
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "up", Cache: "disabled"}
	status := http.StatusOK

	if err := c.database.Ping(probeCtx); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}
	if c.cache != nil {
		resp.Cache = "up"
		if err := c.cache.Ping(probeCtx); err != nil {
			// pages are served from the database when redis is gone
			resp.Cache = "down"
		}
	}

	ctx.JSON(status, dto.NewSuccessResponse(resp))
}
