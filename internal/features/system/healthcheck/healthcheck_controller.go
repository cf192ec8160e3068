package system_healthcheck

import (
	"net/http"

	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
}

// GetHealth
// @Summary Service health
// @Description Database ping, cache round trip and host resource usage
// @Tags system
// @Produce json
// @Success 200 {object} response.Envelope{data=system_healthcheck.HealthStatus}
// @Failure 503 {object} response.Envelope
// @Router /health [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	status := c.healthcheckService.CheckHealth()

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, response.Envelope{
		Success: status.Status == "ok",
		Data:    status,
	})
}
