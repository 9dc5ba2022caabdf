// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockadoodle/backend/internal/models"
	"github.com/stockadoodle/backend/internal/utils"
)

type ProductService struct {
	db       *gorm.DB
	activity *ActivityService
}

type CreateProductRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=120"`
	Brand          string     `json:"brand,omitempty" validate:"omitempty,max=120"`
	Price          *float64   `json:"price" validate:"required,min=0"`
	StockLevel     int        `json:"stock_level" validate:"min=0"`
	MinStockLevel  *int       `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
}

type UpdateProductRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Brand          *string    `json:"brand,omitempty" validate:"omitempty,max=120"`
	Price          *float64   `json:"price,omitempty" validate:"omitempty,min=0"`
	StockLevel     *int       `json:"stock_level,omitempty" validate:"omitempty,min=0"`
	MinStockLevel  *int       `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
}

func NewProductService(db *gorm.DB, activity *ActivityService) *ProductService {
	return &ProductService{db: db, activity: activity}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Product
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrProductNameTaken
	}

	if req.CategoryID != nil {
		if err := s.categoryExists(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		Name:           req.Name,
		Brand:          req.Brand,
		Price:          *req.Price,
		StockLevel:     req.StockLevel,
		MinStockLevel:  10,
		ExpirationDate: req.ExpirationDate,
		CategoryID:     req.CategoryID,
	}
	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// SearchProducts lists products with optional category filter and
// case-insensitive name search, paginated.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	query = utils.ApplySort(query, params.PaginationParams, []string{"name", "price", "stock_level", "created_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.CategoryID != nil {
		if err := s.categoryExists(*req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockLevel != nil {
		product.StockLevel = *req.StockLevel
	}
	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.ExpirationDate != nil {
		product.ExpirationDate = req.ExpirationDate
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (s *ProductService) SetImageURL(id uuid.UUID, url string) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(product).UpdateColumn("image_url", url).Error; err != nil {
		return nil, fmt.Errorf("failed to set image url: %w", err)
	}
	product.ImageURL = url
	return product, nil
}

// DeleteProduct hard-deletes the product and appends a DELETE activity row.
// Historical sales keep their denormalized line-item snapshots.
func (s *ProductService) DeleteProduct(id uuid.UUID, actingUserID *uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.activity.LogProductAction(&id, actingUserID, models.ActionDelete,
		fmt.Sprintf("Product '%s' deleted", product.Name))
	return nil
}

func (s *ProductService) CountProducts() (int64, error) {
	var count int64
	err := s.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (s *ProductService) categoryExists(id uuid.UUID) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}
