// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stockadoodle/backend/internal/services"
	"github.com/stockadoodle/backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, categories)
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, category)
}

// PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input data", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(id, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, category)
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Category deleted",
	})
}
