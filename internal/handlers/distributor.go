// internal/handlers/distributor.go
package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buyx/backend/internal/services"
	"github.com/buyx/backend/internal/utils"
)

// DistributorHandler covers the distributor console: product CRUD, image
// upload and the incoming-order view.
type DistributorHandler struct {
	productService *services.ProductService
	orderService   *services.OrderService
	storageService *services.StorageService
}

func NewDistributorHandler(productService *services.ProductService, orderService *services.OrderService, storageService *services.StorageService) *DistributorHandler {
	return &DistributorHandler{
		productService: productService,
		orderService:   orderService,
		storageService: storageService,
	}
}

// GET /distributor/products
func (h *DistributorHandler) ListProducts(c *gin.Context) {
	distributorID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.GetDistributorProducts(distributorID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /distributor/products
func (h *DistributorHandler) CreateProduct(c *gin.Context) {
	distributorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(distributorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			utils.ForbiddenResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// PUT /distributor/products/:id
func (h *DistributorHandler) UpdateProduct(c *gin.Context) {
	distributorID, ok := requireUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateProduct(productID, distributorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DELETE /distributor/products/:id
func (h *DistributorHandler) DeleteProduct(c *gin.Context) {
	distributorID, ok := requireUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.DeleteProduct(productID, distributorID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product deleted successfully",
	})
}

// POST /distributor/products/upload-images
func (h *DistributorHandler) UploadImages(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided", nil)
		return
	}

	if len(files) > h.storageService.MaxProductImages() {
		utils.BadRequestResponse(c, fmt.Sprintf("At most %d images per product", h.storageService.MaxProductImages()), nil)
		return
	}

	var results []*services.UploadResult
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
			return
		}

		result, err := h.storageService.UploadProductImage(file, header)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}

		results = append(results, result)
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Images uploaded successfully",
		"images":  results,
	})
}

// GET /distributor/orders
func (h *DistributorHandler) ListOrders(c *gin.Context) {
	distributorID, ok := requireUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetDistributorOrders(distributorID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// PUT /distributor/orders/:id/status
func (h *DistributorHandler) UpdateOrderStatus(c *gin.Context) {
	distributorID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderStatus(distributorID, orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, "Failed to update order status")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}
