package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports service health
type HealthController struct {
	db      Pinger
	mode    string
	version string
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger, mode, version string) *HealthController {
	return &HealthController{db: db, mode: mode, version: version}
}

// Health reports service and database status. It always answers 200.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := dto.HealthResponse{
		Status:   "healthy",
		Mode:     c.mode,
		Version:  c.version,
		Database: "connected",
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if c.db == nil || c.db.Ping(pingCtx) != nil {
		status.Database = "disconnected"
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status, ""))
}
