// internal/handlers/product.go
package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stockadoodle/backend/internal/models"
	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

type ProductHandler struct {
	productService   *services.ProductService
	inventoryService *services.InventoryService
	storageService   *services.StorageService
}

func NewProductHandler(productService *services.ProductService, inventoryService *services.InventoryService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService:   productService,
		inventoryService: inventoryService,
		storageService:   storageService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ProductSearchParams{
		PaginationParams: params,
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			searchParams.CategoryID = &categoryID
		}
	}

	products, total, err := h.productService.SearchProducts(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id, actingUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product deleted",
	})
}

type stockAdjustRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Notes    string `json:"notes,omitempty"`
}

// POST /products/:id/restock
func (h *ProductHandler) RestockProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req stockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}
	if req.Quantity <= 0 {
		utils.BadRequestResponse(c, "Quantity must be positive", nil)
		return
	}

	notes := req.Notes
	if notes == "" {
		notes = fmt.Sprintf("Qty %d", req.Quantity)
	}

	product, err := h.inventoryService.AdjustStock(id, req.Quantity, actingUserID(c), models.ActionRestock, notes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products/:id/dispose
func (h *ProductHandler) DisposeProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req stockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}
	if req.Quantity <= 0 {
		utils.BadRequestResponse(c, "Quantity must be positive", nil)
		return
	}

	notes := req.Notes
	if notes == "" {
		notes = fmt.Sprintf("Qty %d", req.Quantity)
	}

	product, err := h.inventoryService.AdjustStock(id, -req.Quantity, actingUserID(c), models.ActionDispose, notes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products/:id/image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "No image file provided", nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	product, err := h.productService.SetImageURL(id, result.URL)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
		"upload":  result,
	})
}

// GET /products/low-stock
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.inventoryService.GetLowStock()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, products)
}

// GET /products/expiring
func (h *ProductHandler) GetExpiring(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	products, err := h.inventoryService.GetExpiring(days)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, products)
}
