// internal/handlers/sale.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockadoodle/backend/internal/models"
	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

type SaleHandler struct {
	salesService *services.SalesService
}

func NewSaleHandler(salesService *services.SalesService) *SaleHandler {
	return &SaleHandler{salesService: salesService}
}

// POST /sales
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	// Retailers can only record sales against themselves; Managers and
	// Admins may record for anyone.
	if role, _ := utils.GetUserRoleFromContext(c); role == string(models.RoleRetailer) {
		if uid := actingUserID(c); uid != nil {
			req.RetailerID = *uid
		}
	}

	sale, err := h.salesService.RecordSale(&req)
	if err != nil {
		// The whole sale fails as one bad request, even when the cause is
		// a missing product or retailer.
		if errors.Is(err, services.ErrProductNotFound) || errors.Is(err, services.ErrUserNotFound) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, sale)
}

// GET /sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.salesService.GetSale(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, sale)
}

// DELETE /sales/:id
func (h *SaleHandler) UndoSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.salesService.UndoSale(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Sale undone",
	})
}

// GET /sales/report
func (h *SaleHandler) GetSalesReport(c *gin.Context) {
	var start, end *time.Time

	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start_date, expected YYYY-MM-DD", nil)
			return
		}
		start = &parsed
	}
	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end_date, expected YYYY-MM-DD", nil)
			return
		}
		// Include the whole end day.
		parsed = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &parsed
	}

	report, err := h.salesService.GetSalesReport(start, end)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, report)
}
