// internal/handlers/metrics.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

type MetricsHandler struct {
	metricsService *services.MetricsService
}

func NewMetricsHandler(metricsService *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// GET /metrics/retailers/:id
func (h *MetricsHandler) GetRetailerMetrics(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := h.metricsService.GetRetailerMetrics(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, m)
}

// GET /metrics/leaderboard
func (h *MetricsHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	leaderboard, err := h.metricsService.GetLeaderboard(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, leaderboard)
}
