// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/models"
	"github.com/buyx/backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Brand          string                 `json:"brand" validate:"required"`
	ModelName      string                 `json:"model_name" validate:"required,min=1,max=100"`
	Price          decimal.Decimal        `json:"price" validate:"required"`
	OriginalPrice  *decimal.Decimal       `json:"original_price,omitempty"`
	Discount       int                    `json:"discount" validate:"min=0,max=100"`
	Features       string                 `json:"features,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Stock          int                    `json:"stock" validate:"min=0"`
	Images         []string               `json:"images,omitempty" validate:"max=4"`
}

type UpdateProductRequest struct {
	Brand          string                 `json:"brand,omitempty"`
	ModelName      string                 `json:"model_name,omitempty" validate:"omitempty,min=1,max=100"`
	Price          *decimal.Decimal       `json:"price,omitempty"`
	OriginalPrice  *decimal.Decimal       `json:"original_price,omitempty"`
	Discount       *int                   `json:"discount,omitempty" validate:"omitempty,min=0,max=100"`
	Features       *string                `json:"features,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Stock          *int                   `json:"stock,omitempty" validate:"omitempty,min=0"`
	Images         []string               `json:"images,omitempty" validate:"max=4"`
	IsAvailable    *bool                  `json:"is_available,omitempty"`
}

// ProductDetail is the product page context: the record, its reviews and the
// average rating recomputed on every read.
type ProductDetail struct {
	Product       *models.Product `json:"product"`
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	InCart        bool            `json:"in_cart"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// SearchProducts lists available products, optionally filtered by brand and a
// model-name search term.
func (s *ProductService) SearchProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("is_available = ?", true)

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(model_name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "price", "brand", "model_name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(id uuid.UUID, userID *uuid.UUID) (*ProductDetail, error) {
	var product models.Product
	if err := s.db.Preload("Distributor").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var reviews []models.Review
	if err := s.db.Where("product_id = ?", id).Preload("User").
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	// Unweighted mean, recomputed per view
	avg := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg = float64(sum) / float64(len(reviews))
	}

	detail := &ProductDetail{
		Product:       &product,
		Reviews:       reviews,
		AverageRating: avg,
	}

	if userID != nil {
		var count int64
		s.db.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", *userID, id).
			Count(&count)
		detail.InCart = count > 0
	}

	return detail, nil
}

func (s *ProductService) CreateProduct(distributorID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !models.IsValidBrand(req.Brand) {
		return nil, errors.New("unknown brand")
	}

	var distributor models.User
	if err := s.db.First(&distributor, distributorID).Error; err != nil {
		return nil, fmt.Errorf("distributor not found: %w", err)
	}
	if !distributor.IsDistributor() {
		return nil, ErrAccessDenied
	}

	slug, err := s.uniqueSlug(req.Brand, req.ModelName)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		DistributorID:  distributorID,
		Brand:          req.Brand,
		ModelName:      req.ModelName,
		Slug:           slug,
		Images:         req.Images,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Discount:       req.Discount,
		Features:       req.Features,
		Specifications: models.JSONB(req.Specifications),
		Stock:          req.Stock,
		IsAvailable:    true,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, distributorID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Ownership is enforced by scoping the lookup to the acting distributor
	var product models.Product
	if err := s.db.Where("id = ? AND distributor_id = ?", id, distributorID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Brand != "" {
		if !models.IsValidBrand(req.Brand) {
			return nil, errors.New("unknown brand")
		}
		updates["brand"] = req.Brand
	}
	if req.ModelName != "" {
		updates["model_name"] = req.ModelName
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.Features != nil {
		updates["features"] = *req.Features
	}
	if req.Specifications != nil {
		updates["specifications"] = models.JSONB(req.Specifications)
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

// DeleteProduct removes the product outright. Historical orders survive via
// the denormalized fields on their items.
func (s *ProductService) DeleteProduct(id uuid.UUID, distributorID uuid.UUID) error {
	result := s.db.Where("id = ? AND distributor_id = ?", id, distributorID).Delete(&models.Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductService) GetDistributorProducts(distributorID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("distributor_id = ?", distributorID)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(model_name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count distributor products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "price", "stock", "model_name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch distributor products: %w", err)
	}

	return products, total, nil
}

// uniqueSlug appends a counter until the brand-model slug is free.
func (s *ProductService) uniqueSlug(brand, modelName string) (string, error) {
	base := utils.Slugify(brand + "-" + modelName)
	slug := base

	for counter := 1; ; counter++ {
		var count int64
		if err := s.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
