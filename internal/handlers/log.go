// internal/handlers/log.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockadoodle/backend/internal/models"
	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

type LogHandler struct {
	activityService *services.ActivityService
}

func NewLogHandler(activityService *services.ActivityService) *LogHandler {
	return &LogHandler{activityService: activityService}
}

// GET /logs
func (h *LogHandler) GetLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.activityService.Recent(services.ActivityFilter{
		Limit:      limit,
		ActionType: c.Query("action_type"),
	})
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, logs)
}

type desktopLogRequest struct {
	Action  string                 `json:"action" validate:"required"`
	Target  string                 `json:"target,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// POST /logs/desktop
//
// Lets the desktop client record actions that never hit the API (local UI
// operations), attributed to the authenticated user.
func (h *LogHandler) RecordDesktopAction(c *gin.Context) {
	var req desktopLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}
	if req.Action == "" {
		utils.BadRequestResponse(c, "Action is required", nil)
		return
	}

	h.activityService.LogUserAction(actingUserID(c), req.Action, req.Target, models.SourceDesktop, req.Details)

	utils.CreatedResponse(c, gin.H{
		"message": "Action recorded",
	})
}

// GET /logs/products/:id
func (h *LogHandler) GetProductLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.activityService.Recent(services.ActivityFilter{
		Limit:     limit,
		ProductID: &id,
	})
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, logs)
}

// GET /logs/users/:id
func (h *LogHandler) GetUserLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.activityService.Recent(services.ActivityFilter{
		Limit:  limit,
		UserID: &id,
	})
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, logs)
}
