package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves operational endpoints
type SystemHandler struct {
	appName string
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, version string) *SystemHandler {
	return &SystemHandler{appName: appName, version: version}
}

// Health reports service liveness
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.appName,
		"version": h.version,
	})
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}
