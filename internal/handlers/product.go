// internal/handlers/product.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buyx/backend/internal/services"
	"github.com/buyx/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	reviewService  *services.ReviewService
}

func NewProductHandler(productService *services.ProductService, reviewService *services.ReviewService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
	}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	// InCart is only computed for authenticated callers
	var userID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			userID = &parsed
		}
	}

	detail, err := h.productService.GetProduct(productID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch product")
		return
	}

	utils.SuccessResponse(c, detail)
}

// POST /products/:id/reviews
func (h *ProductHandler) AddReview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	review, err := h.reviewService.AddReview(userID, productID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			utils.BadRequestResponse(c, err.Error(), nil)
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Product not found")
		default:
			utils.InternalErrorResponse(c, "Failed to save review")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Review saved successfully",
		"review":  review,
	})
}

// GET /products/:id/reviews
func (h *ProductHandler) GetReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	reviews, err := h.reviewService.GetProductReviews(productID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch reviews")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
	})
}

// requireUserID pulls the authenticated user's UUID out of the gin context,
// writing the error response itself when the caller is not authenticated.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}
