package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	startedAt time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{startedAt: time.Now()}
}

// Check godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (ctl *HealthController) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(ctl.startedAt).String(),
	})
}
