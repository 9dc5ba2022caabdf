// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

// DashboardHandler aggregates per-role overview numbers for the desktop
// client's landing screens.
type DashboardHandler struct {
	productService   *services.ProductService
	inventoryService *services.InventoryService
	salesService     *services.SalesService
	userService      *services.UserService
	metricsService   *services.MetricsService
}

func NewDashboardHandler(
	productService *services.ProductService,
	inventoryService *services.InventoryService,
	salesService *services.SalesService,
	userService *services.UserService,
	metricsService *services.MetricsService,
) *DashboardHandler {
	return &DashboardHandler{
		productService:   productService,
		inventoryService: inventoryService,
		salesService:     salesService,
		userService:      userService,
		metricsService:   metricsService,
	}
}

// GET /dashboard/admin
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	userCount, err := h.userService.CountUsers()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	productCount, err := h.productService.CountProducts()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	saleCount, err := h.salesService.CountSales()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	report, err := h.salesService.GetSalesReport(nil, nil)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"total_users":    userCount,
		"total_products": productCount,
		"total_sales":    saleCount,
		"total_revenue":  report.TotalRevenue,
	})
}

// GET /dashboard/manager
func (h *DashboardHandler) GetManagerDashboard(c *gin.Context) {
	productCount, err := h.productService.CountProducts()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	lowStock, err := h.inventoryService.CountLowStock()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	expiring, err := h.inventoryService.CountExpiring(7)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	report, err := h.salesService.GetSalesReport(nil, nil)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"total_products":     productCount,
		"low_stock_count":    lowStock,
		"expiring_count":     expiring,
		"total_revenue":      report.TotalRevenue,
		"total_transactions": report.Transactions,
	})
}

// GET /dashboard/retailer
func (h *DashboardHandler) GetRetailerDashboard(c *gin.Context) {
	userID := actingUserID(c)
	if userID == nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	m, err := h.metricsService.GetRetailerMetrics(*userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"quota_usd":      m.DailyQuotaUSD,
		"current_streak": m.CurrentStreak,
		"last_sale_date": m.LastSaleDate,
	})
}
