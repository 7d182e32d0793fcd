// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/buyx/backend/internal/services"
	"github.com/buyx/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch cart")
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.cartService.AddItem(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Product not found")
		case errors.Is(err, services.ErrInsufficientStock):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, "Failed to add item to cart")
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Item added to cart",
		"item":    item,
	})
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid cart item ID", nil)
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if err := h.cartService.UpdateItem(userID, itemID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Cart item not found")
		case errors.Is(err, services.ErrInsufficientStock):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, "Failed to update cart item")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Cart updated",
	})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid cart item ID", nil)
		return
	}

	if err := h.cartService.RemoveItem(userID, itemID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Cart item not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to remove cart item")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Item removed from cart",
	})
}
